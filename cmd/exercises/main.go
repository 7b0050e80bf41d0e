package main

import (
	"alcyxob/exercise-screen/internal/config"
	"alcyxob/exercise-screen/internal/domain"
	"alcyxob/exercise-screen/internal/picker"
	"alcyxob/exercise-screen/internal/repository/memory"
	"alcyxob/exercise-screen/internal/screen"
	"alcyxob/exercise-screen/internal/service"
	"alcyxob/exercise-screen/internal/tui"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI; logs go to a file.
	logFile, err := tea.LogToFile(cfg.TUI.LogFile, "exercises")
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not open log file %s: %v\n", cfg.TUI.LogFile, err)
		os.Exit(1)
	}
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	imagePicker := picker.NewCommandPicker(cfg.Picker.Command, cfg.Picker.Args...)
	if cfg.Picker.Command == "" {
		log.Println("WARN: picker.command is not set; image selection is unavailable")
	}

	exerciseRepo := memory.NewDefaultExerciseRepository()
	exerciseService := service.NewExerciseService(exerciseRepo)
	scr := screen.NewScreen(exerciseService, imagePicker)

	program := tea.NewProgram(tui.NewModel(ctx, scr), tea.WithAltScreen(), tea.WithContext(ctx))

	unsubscribe := exerciseRepo.Subscribe(func(all []*domain.Exercise) {
		log.Printf("INFO: Exercise list now has %d entries", len(all))
		go program.Send(tui.ExercisesChanged())
	})
	defer unsubscribe()

	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		log.Printf("ERROR: Exercise screen exited: %v", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
