package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sadopc/japa/internal/challenge"
	"github.com/sadopc/japa/internal/config"
	"github.com/sadopc/japa/internal/identity"
	"github.com/sadopc/japa/internal/practice"
	"github.com/sadopc/japa/internal/reminder"
	"github.com/sadopc/japa/internal/sound"
	"github.com/sadopc/japa/internal/store"
	"github.com/sadopc/japa/internal/tui"
)

func main() {
	cfg, err := config.Load(os.Getenv("JAPA_CONFIG_DIR"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	closeLog, err := setupLogging(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	s, err := store.New(cfg.DBPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()
	log.Info().Str("db", cfg.DBPath()).Msg("database opened")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracker := practice.NewTracker(s, time.Now)

	// The reminder loop delivers into the running program.
	var program *tea.Program
	notifier := reminder.NotifierFunc(func(n reminder.Notification) error {
		if program == nil {
			return errors.New("no program to deliver to")
		}
		program.Send(tui.ReminderMsg(n))
		return nil
	})
	reminders := reminder.NewService(s, notifier, time.Now)

	app := tui.NewApp(tui.Services{
		Store:         s,
		Practice:      tracker,
		Challenges:    challenge.NewTracker(s),
		Identity:      identity.NewService(s, tracker, time.Now, nil),
		Reminders:     reminders,
		Sound:         sound.NewPlayer(os.Stdout),
		ExportDir:     cfg.ExportDir(),
		DefaultTarget: cfg.Counter.DefaultTarget,
		Now:           time.Now,
	})
	program = tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))

	go reminders.Run(ctx, cfg.Reminder.CheckInterval)

	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		log.Error().Err(err).Msg("program exited")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("bye")
}

// setupLogging points the global zerolog logger at the configured log file.
// The terminal belongs to the UI, so without a file logs are discarded.
func setupLogging(cfg *config.Config) (func(), error) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Log.Level))
	if err != nil {
		return nil, err
	}
	zerolog.SetGlobalLevel(level)

	path := cfg.LogPath()
	if path == "" {
		log.Logger = zerolog.New(io.Discard)
		return func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: f, NoColor: true, TimeFormat: time.RFC3339})
	return func() { f.Close() }, nil
}
