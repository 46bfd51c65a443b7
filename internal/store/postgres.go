package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

var _ Backend = (*Postgres)(nil)

const (
	postgresDriver = "pgx"
	defaultDSN     = "postgres://localhost/wms?sslmode=disable"
)

// Postgres stores records in one table keyed by (namespace, id), where the
// namespace is the key prefix before ':'.
type Postgres struct {
	db *sql.DB
}

// OpenPostgres connects using dsn (falls back to defaultDSN) and ensures the table exists.
func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	database, err := sql.Open(postgresDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := database.PingContext(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	p := &Postgres{db: database}
	if err := p.ensureTable(ctx); err != nil {
		database.Close()
		return nil, err
	}
	return p, nil
}

func (p *Postgres) ensureTable(ctx context.Context) error {
	ddl := `CREATE TABLE IF NOT EXISTS wms_records (
		namespace  TEXT NOT NULL,
		id         TEXT NOT NULL,
		payload    JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (namespace, id)
	)`
	if _, err := p.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure records table: %w", err)
	}
	return nil
}

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	ns, id := splitKey(key)
	var payload []byte
	err := p.db.QueryRowContext(ctx,
		`SELECT payload FROM wms_records WHERE namespace = $1 AND id = $2`, ns, id,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select record: %w", err)
	}
	return payload, nil
}

func (p *Postgres) Set(ctx context.Context, key string, value []byte) error {
	ns, id := splitKey(key)
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO wms_records (namespace, id, payload) VALUES ($1, $2, $3)
		 ON CONFLICT (namespace, id) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`,
		ns, id, value,
	)
	if err != nil {
		return fmt.Errorf("upsert record: %w", err)
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, key string) error {
	ns, id := splitKey(key)
	result, err := p.db.ExecContext(ctx,
		`DELETE FROM wms_records WHERE namespace = $1 AND id = $2`, ns, id,
	)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete record rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) List(ctx context.Context, prefix string) ([]string, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if strings.Contains(prefix, ":") {
		ns, idPrefix := splitKey(prefix)
		rows, err = p.db.QueryContext(ctx,
			`SELECT namespace, id FROM wms_records
			 WHERE namespace = $1 AND starts_with(id, $2)
			 ORDER BY id`, ns, idPrefix,
		)
	} else {
		rows, err = p.db.QueryContext(ctx,
			`SELECT namespace, id FROM wms_records
			 WHERE starts_with(namespace, $1)
			 ORDER BY namespace, id`, prefix,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var keys []string
	for rows.Next() {
		var ns, id string
		if err := rows.Scan(&ns, &id); err != nil {
			return nil, fmt.Errorf("scan record key: %w", err)
		}
		if ns == "" {
			keys = append(keys, id)
		} else {
			keys = append(keys, ns+":"+id)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate record keys: %w", err)
	}
	return keys, nil
}

func (p *Postgres) Close() error { return p.db.Close() }
