package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// step answers one statement whose SQL starts with prefix
type step struct {
	prefix string
	fields []string
	rows   [][]any
	err    error
}

// script replays steps in order and records every statement it saw
type script struct {
	t     *testing.T
	steps []step
	seen  []string
}

func (s *script) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	s.seen = append(s.seen, sql)
	if len(s.seen) > len(s.steps) {
		s.t.Fatalf("unexpected statement %q", sql)
	}
	st := s.steps[len(s.seen)-1]
	if !strings.HasPrefix(sql, st.prefix) {
		s.t.Fatalf("statement %d = %q, want prefix %q", len(s.seen), sql, st.prefix)
	}
	if st.err != nil {
		return nil, st.err
	}
	return &fakeRows{fields: st.fields, rows: st.rows}, nil
}

func (s *script) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errors.New("exec not scripted")
}

func (s *script) QueryRow(context.Context, string, ...any) pgx.Row {
	s.t.Fatal("QueryRow not scripted")
	return nil
}

type fakeRows struct {
	pgx.Rows
	fields []string
	rows   [][]any
	pos    int
	closed bool
}

func (r *fakeRows) Next() bool {
	if r.closed || r.pos >= len(r.rows) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Values() ([]any, error) { return r.rows[r.pos-1], nil }

func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription {
	out := make([]pgconn.FieldDescription, len(r.fields))
	for i, f := range r.fields {
		out[i] = pgconn.FieldDescription{Name: f}
	}
	return out
}

func (r *fakeRows) Scan(dest ...any) error {
	if len(dest) == 1 {
		if rs, ok := dest[0].(pgx.RowScanner); ok {
			return rs.ScanRow(r)
		}
	}
	return fmt.Errorf("scan into %d destinations not supported", len(dest))
}

func (r *fakeRows) Close() { r.closed = true }
func (r *fakeRows) Err() error { return nil }

type fakeTx struct {
	pgx.Tx
	*script
	committed  bool
	rolledBack bool
}

func (tx *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return tx.script.Query(ctx, sql, args...)
}

func (tx *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return tx.script.Exec(ctx, sql, args...)
}

func (tx *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return tx.script.QueryRow(ctx, sql, args...)
}

func (tx *fakeTx) Commit(context.Context) error {
	tx.committed = true
	return nil
}

func (tx *fakeTx) Rollback(context.Context) error {
	tx.rolledBack = true
	return nil
}

// fakeDatabase runs pool statements on pool and hands out tx from Begin
type fakeDatabase struct {
	*script
	tx       *fakeTx
	beginErr error
	begun    int
}

func (d *fakeDatabase) Begin(context.Context) (pgx.Tx, error) {
	d.begun++
	if d.beginErr != nil {
		return nil, d.beginErr
	}
	return d.tx, nil
}

func newFakeDatabase(t *testing.T, poolSteps []step, txSteps []step) *fakeDatabase {
	return &fakeDatabase{
		script: &script{t: t, steps: poolSteps},
		tx:     &fakeTx{script: &script{t: t, steps: txSteps}},
	}
}
