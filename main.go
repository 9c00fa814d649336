package main

import (
	"fmt"
	"os"

	"lineedit/config"
	"lineedit/editor"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %s: %v (using defaults)\n", config.ConfigPath(), err)
		cfg = config.Default()
	}

	args := os.Args[1:]
	if len(args) > 1 {
		fmt.Fprintln(os.Stderr, "usage: lineedit [file]")
		os.Exit(2)
	}

	path := ""
	if len(args) == 1 {
		path = args[0]
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			fmt.Fprintf(os.Stderr, "error: %s is a directory\n", path)
			os.Exit(1)
		}
	}

	e := editor.New(cfg)
	if err := e.Run(path); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
