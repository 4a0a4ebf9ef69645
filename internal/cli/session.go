package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/rotorgraph/internal/config"
	"github.com/roach88/rotorgraph/internal/engine"
	"github.com/roach88/rotorgraph/internal/metrics"
	"github.com/roach88/rotorgraph/internal/model"
	"github.com/roach88/rotorgraph/internal/quorum"
	"github.com/roach88/rotorgraph/internal/store"
)

// session is the store, engine and quorum definition behind one command.
type session struct {
	opts    *RootOptions
	def     config.Quorum
	store   *store.Store
	engine  *engine.Engine
	metrics *metrics.Metrics
}

// openSession loads the quorum definition and opens the database.
// Configuration problems are command errors.
func openSession(opts *RootOptions) (*session, error) {
	def, err := config.Load(opts.Config)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if opts.Key != "" {
		def.Key = opts.Key
	}

	slog.Debug("opening database", "path", opts.Database)
	st, err := store.Open(opts.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}

	m := metrics.New()
	return &session{
		opts:    opts,
		def:     def,
		store:   st,
		engine:  engine.New(st, engine.WithMetrics(m)),
		metrics: m,
	}, nil
}

// Close writes the metrics file, if requested, and closes the database.
func (s *session) Close() {
	if s.opts.MetricsFile != "" {
		if err := s.metrics.WriteTextfile(s.opts.MetricsFile); err != nil {
			slog.Error("error writing metrics", "error", err)
		}
	}
	if err := s.store.Close(); err != nil {
		slog.Error("error closing database", "error", err)
	}
}

// machine returns machine order of the latest quorum with the session key.
func (s *session) machine(ctx context.Context, order int) (model.Machine, error) {
	q, err := s.store.FindQuorumByKey(ctx, s.def.Key)
	if err != nil {
		if quorum.IsMissing(err) {
			return model.Machine{}, WrapExitError(ExitCommandError,
				"no quorum with key "+s.def.Key+" (run rotorgraph init first)", err)
		}
		return model.Machine{}, WrapExitError(ExitCommandError, "failed to find quorum", err)
	}
	m, err := quorum.Machine(ctx, s.store, q.ID, order)
	if err != nil {
		return model.Machine{}, WrapExitError(ExitCommandError, "failed to find machine", err)
	}
	return m, nil
}

// commandContext returns the command's context or a background one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
