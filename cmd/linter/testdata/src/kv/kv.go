package kv

import "go.uber.org/zap"

type label string

func Logging(s *zap.SugaredLogger, err error, fields []interface{}) {
	s.Infow("Request handled", "uri", "/stats", "status", 200)
	s.Errorw("Failed to write stats batch", "error", err)
	s.Debugw("Stats sample sent")
	s.Warnw("Typed key", label("machine"), "m1")
	s.Infow("Spread", fields...)
	s.Infof("plain %s", "format")

	s.Infow("Odd", "machine")              // want "нечётное число аргументов ключ-значение в вызове Infow"
	s.Errorw("Missing key", err, "detail") // want "ключ №1 в вызове Errorw должен быть строкой"
	s.Warnw("Bad pairs", "a", 1, 2)        // want "нечётное число аргументов ключ-значение в вызове Warnw" "ключ №2 в вызове Warnw должен быть строкой"
}
