// Package corpus persists generated samples together with the seed and
// generator that produced them, so a failing case can be replayed later.
package corpus

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Record is one stored sample.
type Record struct {
	ID        uuid.UUID `json:"id" yaml:"id"`
	Generator string    `json:"generator" yaml:"generator"`
	Args      []string  `json:"args,omitempty" yaml:"args,omitempty"`
	Seed      int64     `json:"seed" yaml:"seed"`
	Index     int       `json:"index" yaml:"index"`
	Value     string    `json:"value" yaml:"value"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Sample describes a value to store. Index is the position of Value among the
// values drawn from Generator with Seed, starting at 0.
type Sample struct {
	Generator string
	Args      []string
	Seed      int64
	Index     int
	Value     any
}

// Decode unmarshals the stored JSON value into v.
func (r Record) Decode(v any) error {
	return json.Unmarshal([]byte(r.Value), v)
}

// Store is a SQLite-backed sample corpus.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
	mu     sync.RWMutex
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for write diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Open opens or creates a corpus at dsn. Use ":memory:" for a throwaway corpus.
func Open(dsn string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	// An in-memory database lives only as long as its connection.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS samples (
			id         TEXT PRIMARY KEY,
			generator  TEXT NOT NULL,
			args       TEXT NOT NULL DEFAULT '[]',
			seed       INTEGER NOT NULL,
			idx        INTEGER NOT NULL DEFAULT 0,
			value      TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);
	`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create samples table: %w", err)
	}

	s := &Store{db: db, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Add stores value, JSON-encoded, under a new ID.
func (s *Store) Add(ctx context.Context, generator string, seed int64, value any) (Record, error) {
	return s.AddSample(ctx, Sample{Generator: generator, Seed: seed, Value: value})
}

// AddSample stores a sample together with the generator arguments and draw
// index needed to replay it.
func (s *Store) AddSample(ctx context.Context, sample Sample) (Record, error) {
	data, err := json.Marshal(sample.Value)
	if err != nil {
		return Record{}, fmt.Errorf("failed to encode sample: %w", err)
	}
	if sample.Index < 0 {
		return Record{}, fmt.Errorf("sample index must not be negative, got %d", sample.Index)
	}

	args := sample.Args
	if args == nil {
		args = []string{}
	}
	argsData, err := json.Marshal(args)
	if err != nil {
		return Record{}, fmt.Errorf("failed to encode generator arguments: %w", err)
	}

	rec := Record{
		ID:        uuid.New(),
		Generator: sample.Generator,
		Args:      sample.Args,
		Seed:      sample.Seed,
		Index:     sample.Index,
		Value:     string(data),
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO samples (id, generator, args, seed, idx, value, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.ID.String(), rec.Generator, string(argsData), rec.Seed, rec.Index, rec.Value, rec.CreatedAt.UnixMilli())
	if err != nil {
		return Record{}, fmt.Errorf("failed to insert sample: %w", err)
	}

	s.logger.Debug("recorded sample",
		zap.Stringer("id", rec.ID),
		zap.String("generator", rec.Generator),
		zap.Int64("seed", rec.Seed),
		zap.Int("index", rec.Index),
	)
	return rec, nil
}

// Get returns the record with the given ID.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, generator, args, seed, idx, value, created_at
		FROM samples
		WHERE id = ?
	`, id.String())

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, &RecordNotFoundError{ID: id}
	}
	return rec, err
}

// List returns all records, oldest first.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, generator, args, seed, idx, value, created_at
		FROM samples
		ORDER BY created_at, rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list samples: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return records, nil
}

// Query returns the records matching a filter expression. An empty expression
// matches everything. See Filter for the expression language.
func (s *Store) Query(ctx context.Context, expr string) ([]Record, error) {
	match, err := Filter(expr)
	if err != nil {
		return nil, err
	}

	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	var matched []Record
	for _, rec := range all {
		if match(rec) {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

// Delete removes the record with the given ID.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM samples WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete sample: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &RecordNotFoundError{ID: id}
	}

	s.logger.Debug("deleted sample", zap.Stringer("id", id))
	return nil
}

// Close releases database resources.
func (s *Store) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var (
		rec       Record
		id        string
		args      string
		createdAt int64
	)
	if err := row.Scan(&id, &rec.Generator, &args, &rec.Seed, &rec.Index, &rec.Value, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, err
		}
		return Record{}, fmt.Errorf("failed to scan row: %w", err)
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return Record{}, fmt.Errorf("corrupt sample id %q: %w", id, err)
	}
	rec.ID = parsed
	if err := json.Unmarshal([]byte(args), &rec.Args); err != nil {
		return Record{}, fmt.Errorf("corrupt arguments for sample %s: %w", id, err)
	}
	if len(rec.Args) == 0 {
		rec.Args = nil
	}
	rec.CreatedAt = time.UnixMilli(createdAt).UTC()
	return rec, nil
}

// RecordNotFoundError indicates no sample has the given ID.
type RecordNotFoundError struct {
	ID uuid.UUID
}

func (e *RecordNotFoundError) Error() string {
	return fmt.Sprintf("sample '%s' not found", e.ID)
}
