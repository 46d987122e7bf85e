package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"markedit/config"
	"markedit/editor"
)

func setupLogging(path string) func() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	log.SetOutput(file)
	return func() { file.Close() }
}

func main() {
	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		cfg = config.Default()
	}

	closeLog := setupLogging(cfg.LogFile)
	defer closeLog()
	if cfgErr != nil {
		log.Printf("config: using defaults: %v", cfgErr)
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	e := editor.New(cfg, cwd)

	if len(os.Args) > 1 {
		path, _ := filepath.Abs(os.Args[1])
		if err := e.Open(path); err != nil {
			fmt.Fprintf(os.Stderr, "error: cannot open %s: %v\n", os.Args[1], err)
			os.Exit(1)
		}
	}

	if err := e.Run(); err != nil {
		log.Printf("editor: %v", err)
		closeLog()
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
