package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"countdown/batch"
	"countdown/config"
	"countdown/countdown"
	"countdown/render"
	"countdown/tui"
	"countdown/video"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "countdown: %v\n", err)
		return 2
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "countdown: %v\n", err)
		return 1
	}
	defer closeLog()

	registry, err := cfg.Registry()
	if err != nil {
		logger.Error().Err(err).Msg("invalid job registry")
		return 2
	}
	jobs := registry.Jobs()

	// Raised by SIGINT/SIGTERM and by the terminal UI; polled every frame
	cancel := &countdown.Flag{}
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		logger.Warn().Msg("interrupt received, stopping after the current frame")
		cancel.Raise()
	}()

	var program *tea.Program
	var observer batch.Observer = batch.NewLogObserver(logger)
	if cfg.TUI {
		program = tea.NewProgram(tui.NewModel(cancel))
		observer = batch.MultiObserver{observer, tui.NewObserver(program)}
	}

	proc, err := batch.NewProcessor(batch.ProcessorConfig{
		OutputDir:   cfg.OutputDir,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Opener:      newOpener(cfg),
		Composers:   newComposerFactory(),
		Signal:      cancel,
		Observer:    observer,
		StopOnError: cfg.StopOnError,
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to initialize processor")
		return 2
	}
	logger.Info().
		Str("run", proc.RunID()).
		Int("jobs", len(jobs)).
		Str("layout", cfg.Layout).
		Str("sink", cfg.Sink).
		Msgf("rendering %dx%d@%d into %s", cfg.Width, cfg.Height, cfg.FPS, cfg.OutputDir)

	var sum batch.Summary
	if program == nil {
		sum, err = proc.Run(context.Background(), jobs)
	} else {
		done := make(chan struct{})
		go func() {
			defer close(done)
			sum, err = proc.Run(context.Background(), jobs)
		}()
		if _, uiErr := program.Run(); uiErr != nil {
			logger.Error().Err(uiErr).Msg("terminal UI failed")
			cancel.Raise()
		}
		<-done
	}

	switch {
	case errors.Is(err, countdown.ErrCanceled):
		fmt.Fprintf(os.Stderr, "canceled: %d of %d jobs completed\n", sum.Count(batch.OutcomeCompleted), len(jobs))
		return 130
	case err != nil:
		fmt.Fprintf(os.Stderr, "countdown: %v\n", err)
		return 1
	}
	return 0
}

// newLogger logs to stderr, or to a file in the output directory while the
// terminal UI owns the screen.
func newLogger(cfg *config.Settings) (zerolog.Logger, func(), error) {
	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	closeFn := func() {}
	if cfg.TUI {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			return zerolog.Logger{}, nil, fmt.Errorf("create output dir: %w", err)
		}
		path := filepath.Join(cfg.OutputDir, config.LogFileName)
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return zerolog.Logger{}, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closeFn = func() { f.Close() }
	}
	zerolog.SetGlobalLevel(cfg.Level())
	logger := zerolog.New(out).Level(cfg.Level()).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	return logger, closeFn, nil
}

func newOpener(cfg *config.Settings) batch.Opener {
	if cfg.Sink == "png" {
		return video.NewPNGOpener()
	}
	return video.NewFFmpegOpener(cfg.Encoder())
}

// newComposerFactory shares one font cache across jobs; jobs run one at a time.
func newComposerFactory() batch.ComposerFactory {
	text := render.NewFaceRenderer()
	arcs := render.NewVectorArcs()
	return func(job countdown.Job, width, height int) (countdown.Composer, error) {
		return render.NewScene(job, width, height, text, arcs)
	}
}
