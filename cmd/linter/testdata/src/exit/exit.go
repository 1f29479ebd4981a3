package exit

import (
	"log"
	"os"

	"go.uber.org/zap"
)

func BadPanic() {
	panic("error") // want "использование встроенной функции panic"
}

func BadLogFatal() {
	log.Fatal("error") // want "вызов log.Fatal вне функции main пакета main"
}

func BadLogFatalf() {
	log.Fatalf("error: %v", "something") // want "вызов log.Fatalf вне функции main пакета main"
}

func BadLogFatalln() {
	log.Fatalln("error") // want "вызов log.Fatalln вне функции main пакета main"
}

func BadExit() {
	os.Exit(1) // want "вызов os.Exit вне функции main пакета main"
}

func BadZapFatal(l *zap.Logger, s *zap.SugaredLogger) {
	l.Fatal("error")                  // want "вызов Logger.Fatal вне функции main пакета main"
	s.Fatalw("error", "machine", "m1") // want "вызов SugaredLogger.Fatalw вне функции main пакета main"
}

type fataler struct{}

func (fataler) Fatal(string) {}

func GoodFunc(l *zap.Logger) {
	log.Println("info message")
	l.Info("info message")
	fataler{}.Fatal("not a logger")
}
