package main

import (
	"fmt"
	"os"

	"tarea/internal/config"
	"tarea/internal/storage"
	"tarea/internal/store"
	"tarea/internal/ui"
)

func main() {
	cfg, err := config.LoadOrCreate(config.ResolveConfigPath())
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	disk, err := storage.Open(cfg.DBPath)
	if err != nil {
		fmt.Printf("failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer disk.Close()

	// Load failures are recoverable: start with whatever slot still parses
	// and surface the rest as a status-line warning.
	warn := ""
	tasks, err := disk.LoadTasks()
	if err != nil {
		warn = fmt.Sprintf("saved tasks could not be read: %v", err)
	}
	dark, err := disk.LoadTheme()
	if err != nil && warn == "" {
		warn = fmt.Sprintf("saved theme could not be read: %v", err)
	}

	st := store.New(tasks, disk)

	if err := ui.Run(st, disk, cfg, dark, warn); err != nil {
		fmt.Printf("error running program: %v\n", err)
		os.Exit(1)
	}
}
