package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/roach88/chatstore/internal/config"
	"github.com/roach88/chatstore/internal/controller"
	"github.com/roach88/chatstore/internal/model"
	"github.com/roach88/chatstore/internal/store"
)

// session is an open database with the model replayed on top of it.
type session struct {
	cfg        config.Config
	store      *store.Store
	model      *model.Model
	controller *controller.Controller
	logger     *slog.Logger
}

// openSession loads configuration, opens the database, and replays it.
// Logs go to logw. reg may be nil.
func openSession(ctx context.Context, opts *RootOptions, logw io.Writer, reg prometheus.Registerer) (*session, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if opts.Database != "" {
		cfg.Database = opts.Database
	}

	level := cfg.Level()
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(logw, &slog.HandlerOptions{Level: level}))

	root, err := cfg.Root()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid server root", err)
	}

	st, err := store.Open(cfg.Database, store.WithLogger(logger))
	if err != nil {
		code := ExitCommandError
		if errors.Is(err, store.ErrSchemaVersion) {
			code = ExitFailure
		}
		return nil, WrapExitError(code, "failed to open database", err)
	}

	m, err := model.New(ctx, st,
		model.WithLogger(logger),
		model.WithRegisterer(reg),
		model.WithGenerationRange(cfg.Generation.Start, cfg.Generation.End),
	)
	if err != nil {
		_ = st.Close()
		return nil, WrapExitError(ExitFailure, "failed to load users", err)
	}

	logger.Debug("session open", "db", st.Path(), "created", st.Created(), "users", m.Stats().Users)
	return &session{
		cfg:        cfg,
		store:      st,
		model:      m,
		controller: controller.New(m, root, controller.WithLogger(logger)),
		logger:     logger,
	}, nil
}

func (s *session) Close() error {
	if err := s.store.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}
