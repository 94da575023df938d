package services

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeDB implements DB with overridable functions.
type fakeDB struct {
	QueryRowFunc func(ctx context.Context, sql string, args ...any) Row
	QueryFunc    func(ctx context.Context, sql string, args ...any) (Rows, error)
	ExecFunc     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (f *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) Row {
	if f.QueryRowFunc != nil {
		return f.QueryRowFunc(ctx, sql, args...)
	}
	return &fakeRow{err: pgx.ErrNoRows}
}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	if f.QueryFunc != nil {
		return f.QueryFunc(ctx, sql, args...)
	}
	return &fakeRows{}, nil
}

func (f *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if f.ExecFunc != nil {
		return f.ExecFunc(ctx, sql, args...)
	}
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

type fakeRow struct {
	values []any
	err    error
}

func (r *fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return fmt.Errorf("scan: expected %d destinations, got %d", len(r.values), len(dest))
	}
	for i, d := range dest {
		dv := reflect.ValueOf(d).Elem()
		v := r.values[i]
		if v == nil {
			dv.Set(reflect.Zero(dv.Type()))
			continue
		}
		rv := reflect.ValueOf(v)
		switch {
		case rv.Type().AssignableTo(dv.Type()):
			dv.Set(rv)
		case rv.Type().ConvertibleTo(dv.Type()):
			dv.Set(rv.Convert(dv.Type()))
		default:
			return fmt.Errorf("scan: cannot assign %T to %s", v, dv.Type())
		}
	}
	return nil
}

// rowFromValues builds a Row that scans the given values in order.
func rowFromValues(values ...any) Row {
	return &fakeRow{values: values}
}

type fakeRows struct {
	rows [][]any
	pos  int
	err  error
}

func (r *fakeRows) Close()     {}
func (r *fakeRows) Err() error { return r.err }

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.rows) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	row := &fakeRow{values: r.rows[r.pos-1]}
	return row.Scan(dest...)
}

// fakeKV is an in-memory KV; TTLs are recorded but never enforced.
type fakeKV struct {
	data map[string]string
	ttls map[string]time.Duration

	getErr error
	setErr error
}

func newFakeKV() *fakeKV {
	return &fakeKV{
		data: make(map[string]string),
		ttls: make(map[string]time.Duration),
	}
}

func (f *fakeKV) Get(ctx context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	v, ok := f.data[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return v, nil
}

func (f *fakeKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value
	f.ttls[key] = ttl
	return nil
}

func (f *fakeKV) Del(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.data, k)
		delete(f.ttls, k)
	}
	return nil
}

func (f *fakeKV) Expire(ctx context.Context, key string, ttl time.Duration) error {
	if _, ok := f.data[key]; ok {
		f.ttls[key] = ttl
	}
	return nil
}
