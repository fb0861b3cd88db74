package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/roach88/bi/internal/config"
	"github.com/roach88/bi/internal/metrics"
	"github.com/roach88/bi/internal/pg"
	"github.com/roach88/bi/internal/query"
	"github.com/roach88/bi/internal/store"
)

// session is the per-command state: resolved config, an open client and
// the formatter, all tagged with one request id.
type session struct {
	cfg       config.Config
	client    query.SearchClient
	store     *store.Store // nil unless the sqlite driver is active
	registry  *prometheus.Registry
	formatter *OutputFormatter
	logger    *slog.Logger
	closers   []func()
}

// newFormatter builds the command's formatter with a fresh request id.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
		TraceID:   newRequestID(),
	}
}

func newRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// openSession loads config, configures logging and connects. Failures are
// reported through f and returned as ExitErrors.
func openSession(ctx context.Context, opts *RootOptions, f *OutputFormatter) (*session, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, f.Fail("failed to load config", err)
	}
	if opts.Database != "" {
		cfg.Driver = config.DriverSQLite
		cfg.SQLite.Path = opts.Database
	}
	if err := cfg.Validate(); err != nil {
		return nil, f.Fail("invalid config", err)
	}

	s := &session{cfg: cfg, formatter: f}
	s.logger = newLogger(f.GetErrWriter(), opts.Verbose, cfg).With("request_id", f.TraceID)
	slog.SetDefault(s.logger)

	switch cfg.Driver {
	case config.DriverPostgres:
		c, err := pg.Connect(ctx, cfg.Postgres)
		if err != nil {
			return nil, f.Fail("failed to connect to postgres", err)
		}
		s.client = c
		s.closers = append(s.closers, c.Close)
	default:
		f.VerboseLog("Opening SQLite database %s", cfg.SQLite.Path)
		st, err := store.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, f.Fail("failed to open database", err)
		}
		s.store = st
		s.client = st
		s.closers = append(s.closers, func() {
			if closeErr := st.Close(); closeErr != nil {
				s.logger.Error("error closing database", "error", closeErr)
			}
		})
	}

	if cfg.Metrics.Enabled {
		s.registry = prometheus.NewRegistry()
		mc, err := metrics.Instrument(s.client, s.registry)
		if err != nil {
			s.Close()
			return nil, f.Fail("failed to register metrics", err)
		}
		s.client = mc
	}

	return s, nil
}

// Close logs collected metrics at debug level and releases the client.
func (s *session) Close() {
	if s.registry != nil {
		s.logMetrics()
	}
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func (s *session) logMetrics() {
	families, err := s.registry.Gather()
	if err != nil {
		s.logger.Warn("failed to gather metrics", "error", err)
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			attrs := []any{"metric", mf.GetName()}
			for _, lp := range m.GetLabel() {
				attrs = append(attrs, lp.GetName(), lp.GetValue())
			}
			switch {
			case m.GetCounter() != nil:
				attrs = append(attrs, "value", m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				attrs = append(attrs, "count", m.GetHistogram().GetSampleCount(), "sum", m.GetHistogram().GetSampleSum())
			}
			s.logger.Debug("query metrics", attrs...)
		}
	}
}

// newLogger builds the stderr text logger: debug when verbose, otherwise
// the configured level.
func newLogger(w io.Writer, verbose bool, cfg config.Config) *slog.Logger {
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func requireStore(s *session) (*store.Store, error) {
	if s.store == nil {
		return nil, s.formatter.Fail("seed unavailable", fmt.Errorf("driver %s does not support seeding", s.cfg.Driver))
	}
	return s.store, nil
}
