package zap

type Logger struct{}

func (l *Logger) Fatal(msg string, fields ...interface{}) {}

func (l *Logger) Info(msg string, fields ...interface{}) {}

func (l *Logger) Sugar() *SugaredLogger { return &SugaredLogger{} }

type SugaredLogger struct{}

func (s *SugaredLogger) Debugw(msg string, keysAndValues ...interface{}) {}

func (s *SugaredLogger) Infow(msg string, keysAndValues ...interface{}) {}

func (s *SugaredLogger) Warnw(msg string, keysAndValues ...interface{}) {}

func (s *SugaredLogger) Errorw(msg string, keysAndValues ...interface{}) {}

func (s *SugaredLogger) Fatalw(msg string, keysAndValues ...interface{}) {}

func (s *SugaredLogger) Fatal(args ...interface{}) {}

func (s *SugaredLogger) Infof(template string, args ...interface{}) {}
