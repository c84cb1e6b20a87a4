package postgres

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"

	"campus-prep/internal/database"
)

type fakeRow struct {
	val string
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != 1 {
		return fmt.Errorf("scan dest mismatch")
	}
	d, ok := dest[0].(*string)
	if !ok {
		return fmt.Errorf("scan type mismatch")
	}
	*d = r.val
	return nil
}

type fakeRows struct {
	vals []string
	i    int
}

func (r *fakeRows) Close()     {}
func (r *fakeRows) Err() error { return nil }
func (r *fakeRows) Next() bool {
	if r.i >= len(r.vals) {
		return false
	}
	r.i++
	return true
}
func (r *fakeRows) Scan(dest ...any) error {
	d, ok := dest[0].(*string)
	if !ok {
		return fmt.Errorf("scan type mismatch")
	}
	*d = r.vals[r.i-1]
	return nil
}

// fakeDB interprets the handful of statements the store issues.
type fakeDB struct {
	mu      sync.Mutex
	kv      map[string]string
	columns []string
	execs   []string
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		kv:      map[string]string{},
		columns: []string{"key", "value", "created_at", "updated_at"},
	}
}

func (db *fakeDB) Ping(context.Context) error { return nil }
func (db *fakeDB) Close() error               { return nil }

func (db *fakeDB) Exec(_ context.Context, query string, args ...any) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.execs = append(db.execs, query)

	q := strings.TrimSpace(query)
	switch {
	case strings.HasPrefix(q, "CREATE TABLE"):
		return 0, nil
	case strings.HasPrefix(q, "INSERT INTO kv_records"):
		db.kv[args[0].(string)] = args[1].(string)
		return 1, nil
	case strings.HasPrefix(q, "DELETE FROM kv_records"):
		k := args[0].(string)
		if _, ok := db.kv[k]; !ok {
			return 0, nil
		}
		delete(db.kv, k)
		return 1, nil
	}
	return 0, fmt.Errorf("unexpected exec: %s", q)
}

func (db *fakeDB) Query(_ context.Context, query string, args ...any) (database.Rows, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	q := strings.TrimSpace(query)
	switch {
	case strings.HasPrefix(q, "SELECT column_name"):
		return &fakeRows{vals: db.columns}, nil
	case strings.HasPrefix(q, "SELECT key FROM kv_records"):
		prefix := args[0].(string)
		var keys []string
		for k := range db.kv {
			if strings.HasPrefix(k, prefix) {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		return &fakeRows{vals: keys}, nil
	}
	return nil, fmt.Errorf("unexpected query: %s", q)
}

func (db *fakeDB) QueryRow(_ context.Context, query string, args ...any) database.Row {
	db.mu.Lock()
	defer db.mu.Unlock()

	v, ok := db.kv[args[0].(string)]
	if !ok {
		return fakeRow{err: database.ErrNoRows}
	}
	return fakeRow{val: v}
}

func TestStore_EnsureSchema(t *testing.T) {
	db := newFakeDB()
	if err := New(db).EnsureSchema(context.Background()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(db.execs) != 1 || !strings.Contains(db.execs[0], "kv_records") {
		t.Fatalf("expected create table exec, got %v", db.execs)
	}
}

func TestStore_EnsureSchema_MissingColumn(t *testing.T) {
	db := newFakeDB()
	db.columns = []string{"key", "value"}
	if err := New(db).EnsureSchema(context.Background()); err == nil {
		t.Fatalf("expected schema mismatch error")
	}
}

func TestStore_CRUD(t *testing.T) {
	ctx := context.Background()
	s := New(newFakeDB())

	if _, ok, err := s.Get(ctx, "user_admin"); err != nil || ok {
		t.Fatalf("expected absent, got ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, "user_admin", `{"id":"admin"}`); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := s.Set(ctx, "user_admin", `{"id":"admin","role":"admin"}`); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	v, ok, err := s.Get(ctx, "user_admin")
	if err != nil || !ok || v != `{"id":"admin","role":"admin"}` {
		t.Fatalf("expected upserted value, got %q ok=%v err=%v", v, ok, err)
	}
	if err := s.Remove(ctx, "user_admin"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "user_admin"); ok {
		t.Fatalf("expected removed")
	}
}

func TestStore_KeysPrefixIsLiteral(t *testing.T) {
	ctx := context.Background()
	s := New(newFakeDB())
	_ = s.Set(ctx, "user_b", "{}")
	_ = s.Set(ctx, "user_a", "{}")
	_ = s.Set(ctx, "userXa", "{}")

	keys, err := s.Keys(ctx, "user_")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(keys) != 2 || keys[0] != "user_a" || keys[1] != "user_b" {
		t.Fatalf("expected [user_a user_b], got %v", keys)
	}
}
