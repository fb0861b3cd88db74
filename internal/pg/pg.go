// Package pg adapts a pgx connection pool to query.SearchClient.
package pg

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/roach88/bi/internal/query"
	"github.com/roach88/bi/internal/textsearch"
)

const connectTimeout = 5 * time.Second

// Config holds Postgres connection settings.
type Config struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN renders cfg as a postgres:// URL. The password is escaped.
func (cfg Config) DSN() string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     cfg.Host + ":" + strconv.Itoa(cfg.Port),
		Path:     "/" + cfg.Name,
		RawQuery: "sslmode=" + url.QueryEscape(sslMode),
	}
	return u.String()
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Client runs queries on a pgx pool. Query text may use ? placeholders;
// they are rewritten to $n before execution.
type Client struct {
	q    querier
	pool *pgxpool.Pool
}

var _ query.SearchClient = (*Client)(nil)

// Connect creates a pool for cfg and pings it.
func Connect(ctx context.Context, cfg Config) (*Client, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("connected to postgres", "host", cfg.Host, "port", cfg.Port, "database", cfg.Name)
	return &Client{q: pool, pool: pool}, nil
}

// Close closes the pool.
func (c *Client) Close() {
	if c.pool != nil {
		c.pool.Close()
	}
}

// Query implements query.Client.
func (c *Client) Query(ctx context.Context, q string, args ...any) (query.Rows, error) {
	rows, err := c.q.Query(ctx, Rebind(q), args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return &pgRows{Rows: rows}, nil
}

// TextSearchExpression renders a to_tsquery prefix expression.
func (c *Client) TextSearchExpression(phrase string) any {
	return textsearch.Postgres(phrase)
}

// pgRows adds an error-returning Close to pgx.Rows.
type pgRows struct {
	pgx.Rows
}

func (r *pgRows) Close() error {
	r.Rows.Close()
	return r.Rows.Err()
}

// Rebind rewrites ? placeholders to $1, $2, ... Question marks inside
// single-quoted literals, double-quoted identifiers and after a backslash
// are left alone.
func Rebind(q string) string {
	if !strings.Contains(q, "?") {
		return q
	}
	var b strings.Builder
	b.Grow(len(q) + 8)
	n := 0
	var quote byte
	for i := 0; i < len(q); i++ {
		ch := q[i]
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case ch == '\'' || ch == '"':
			quote = ch
		case ch == '\\' && i+1 < len(q) && q[i+1] == '?':
			b.WriteByte('?')
			i++
			continue
		case ch == '?':
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(ch)
	}
	return b.String()
}
