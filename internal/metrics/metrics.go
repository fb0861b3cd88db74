// Package metrics wraps a query.Client with Prometheus instrumentation.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/roach88/bi/internal/query"
)

const maxLabelLen = 80

// Status label values.
const (
	StatusOK        = "ok"
	StatusError     = "error"
	StatusRowsError = "rows_error"
)

type clientMetrics struct {
	queries  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newClientMetrics(reg prometheus.Registerer) (*clientMetrics, error) {
	m := &clientMetrics{
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bi",
			Subsystem: "query",
			Name:      "total",
			Help:      "Total queries by statement and status.",
		}, []string{"statement", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "bi",
			Subsystem: "query",
			Name:      "duration_seconds",
			Help:      "Time until the first result was available, in seconds.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"statement"}),
	}
	if err := registerOrReuse(reg, &m.queries); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers a collector or reuses an existing one.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(T)
			if !ok {
				return fmt.Errorf("metric already registered with incompatible type: %T", are.ExistingCollector)
			}
			*c = existing
			return nil
		}
		return fmt.Errorf("register metric: %w", err)
	}
	return nil
}

// Option configures Instrument.
type Option func(*Client)

// WithLabeler sets how query text is turned into the statement label.
func WithLabeler(f func(query string) string) Option {
	return func(c *Client) { c.label = f }
}

// Client is an instrumented query.SearchClient.
type Client struct {
	next    query.Client
	metrics *clientMetrics
	label   func(string) string
	now     func() time.Time
}

var _ query.SearchClient = (*Client)(nil)

// Instrument wraps next and registers its collectors with reg. Wrapping
// several clients with the same reg shares the collectors.
func Instrument(next query.Client, reg prometheus.Registerer, opts ...Option) (*Client, error) {
	m, err := newClientMetrics(reg)
	if err != nil {
		return nil, err
	}
	c := &Client{next: next, metrics: m, label: StatementLabel, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Query implements query.Client.
func (c *Client) Query(ctx context.Context, q string, args ...any) (query.Rows, error) {
	label := c.label(q)
	start := c.now()
	rows, err := c.next.Query(ctx, q, args...)
	c.metrics.duration.WithLabelValues(label).Observe(c.now().Sub(start).Seconds())
	if err != nil {
		c.metrics.queries.WithLabelValues(label, StatusError).Inc()
		return nil, err
	}
	return &countingRows{Rows: rows, label: label, metrics: c.metrics}, nil
}

// TextSearchExpression forwards to the wrapped client when it builds
// expressions, and returns the phrase unchanged otherwise.
func (c *Client) TextSearchExpression(phrase string) any {
	if ts, ok := c.next.(query.TextSearcher); ok {
		return ts.TextSearchExpression(phrase)
	}
	return phrase
}

// countingRows records the query status once, at Close.
type countingRows struct {
	query.Rows
	label   string
	metrics *clientMetrics
	done    bool
}

func (r *countingRows) Close() error {
	err := r.Rows.Close()
	if r.done {
		return err
	}
	r.done = true
	status := StatusOK
	if r.Rows.Err() != nil || err != nil {
		status = StatusRowsError
	}
	r.metrics.queries.WithLabelValues(r.label, status).Inc()
	return err
}

// StatementLabel collapses whitespace in q and truncates it on a rune
// boundary to at most maxLabelLen bytes. Invalid UTF-8 is replaced, since
// prometheus rejects it in label values. Query text is static per entity
// type, so label cardinality stays bounded.
func StatementLabel(q string) string {
	s := strings.ToValidUTF8(strings.Join(strings.Fields(q), " "), "\uFFFD")
	if len(s) > maxLabelLen {
		n := maxLabelLen
		for n > 0 && !utf8.RuneStart(s[n]) {
			n--
		}
		s = s[:n]
	}
	return s
}
