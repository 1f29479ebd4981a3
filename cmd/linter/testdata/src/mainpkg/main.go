package main

import (
	"log"
	"os"
)

func main() {
	if len(os.Args) > 5 {
		os.Exit(2)
	}
	log.Fatal("allowed in main.main")
}

func run() {
	os.Exit(1) // want "вызов os.Exit вне функции main пакета main"
}
