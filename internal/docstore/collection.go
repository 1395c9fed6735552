package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"sync"
)

// Identifiable is the capability a domain struct must provide to live in a
// Collection: a stable opaque id field the collection can read and, on
// insert, populate.
type Identifiable interface {
	GetID() string
	SetID(id string)
}

// Collection is a strongly-typed handle onto one document-store table. A
// single mutex serializes read-modify-write sequences (UpdateOne,
// FindOneAndUpdate, ReplaceOne) against the collection, which is what
// stands in here for "single-document atomicity" from a real driver.
type Collection[T Identifiable] struct {
	store *Store
	table string
	mu    sync.Mutex
}

// NewCollection opens (creating if necessary) the backing table for T.
func NewCollection[T Identifiable](store *Store, table string) (*Collection[T], error) {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %q (id TEXT PRIMARY KEY, doc TEXT NOT NULL)`, table)
	if _, err := store.db.Exec(ddl); err != nil {
		return nil, fmt.Errorf("docstore: create table %s: %w", table, err)
	}
	return &Collection[T]{store: store, table: table}, nil
}

// InsertOne assigns an id if the value doesn't already carry one, persists
// it, and returns the id.
func (c *Collection[T]) InsertOne(ctx context.Context, value T) (string, error) {
	if value.GetID() == "" {
		value.SetID(NewObjectID())
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("docstore: marshal: %w", err)
	}
	_, err = c.store.db.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO %q (id, doc) VALUES (?, ?)`, c.table),
		value.GetID(), string(raw))
	if err != nil {
		return "", fmt.Errorf("docstore: insert into %s: %w", c.table, err)
	}
	return value.GetID(), nil
}

// FindOne returns the first document matching q, in row order.
func (c *Collection[T]) FindOne(ctx context.Context, q Query) (T, bool, error) {
	var zero T
	rows, err := c.scan(ctx)
	if err != nil {
		return zero, false, err
	}
	for _, r := range rows {
		if q.Matches(r.doc) {
			return r.value, true, nil
		}
	}
	return zero, false, nil
}

// Find returns every document matching q, in row order.
func (c *Collection[T]) Find(ctx context.Context, q Query) ([]T, error) {
	rows, err := c.scan(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if q.Matches(r.doc) {
			out = append(out, r.value)
		}
	}
	return out, nil
}

// FindRandom draws up to count documents matching q. When allowDuplicates is
// false and fewer than count documents match, it returns every match
// (callers must check the returned length against count themselves, as the
// pack-opening transaction does).
func (c *Collection[T]) FindRandom(ctx context.Context, q Query, count int, allowDuplicates bool) ([]T, error) {
	matches, err := c.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 || count <= 0 {
		return nil, nil
	}
	if allowDuplicates {
		out := make([]T, count)
		for i := range out {
			out[i] = matches[rand.IntN(len(matches))]
		}
		return out, nil
	}
	shuffled := make([]T, len(matches))
	copy(shuffled, matches)
	rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	if count > len(shuffled) {
		count = len(shuffled)
	}
	return shuffled[:count], nil
}

// UpdateOne applies u to the first document matching q and persists it.
// Reports whether a document matched.
func (c *Collection[T]) UpdateOne(ctx context.Context, q Query, u Update) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	row, ok, err := c.findRowLocked(ctx, q)
	if err != nil || !ok {
		return false, err
	}
	u.Apply(row.doc)
	return true, c.writeRowLocked(ctx, row)
}

// FindOneAndUpdate applies u to the first document matching q and returns
// the post-update document, persisted atomically with respect to other
// calls on this collection. This is the primitive the pack-opening
// transaction relies on to avoid the increment-after-insert hazard.
func (c *Collection[T]) FindOneAndUpdate(ctx context.Context, q Query, u Update) (T, bool, error) {
	var zero T
	c.mu.Lock()
	defer c.mu.Unlock()
	row, ok, err := c.findRowLocked(ctx, q)
	if err != nil || !ok {
		return zero, false, err
	}
	u.Apply(row.doc)
	if err := c.writeRowLocked(ctx, row); err != nil {
		return zero, false, err
	}
	return row.value, true, nil
}

// ReplaceOne overwrites the first document matching q with value, keeping
// its existing id.
func (c *Collection[T]) ReplaceOne(ctx context.Context, q Query, value T) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	row, ok, err := c.findRowLocked(ctx, q)
	if err != nil || !ok {
		return false, err
	}
	value.SetID(row.value.GetID())
	raw, err := json.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("docstore: marshal: %w", err)
	}
	_, err = c.store.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE %q SET doc = ? WHERE id = ?`, c.table),
		string(raw), row.id)
	if err != nil {
		return false, fmt.Errorf("docstore: replace in %s: %w", c.table, err)
	}
	return true, nil
}

type row[T any] struct {
	id    string
	value T
	doc   Document
}

func (c *Collection[T]) scan(ctx context.Context) ([]row[T], error) {
	rs, err := c.store.db.QueryContext(ctx, fmt.Sprintf(`SELECT id, doc FROM %q`, c.table))
	if err != nil {
		return nil, fmt.Errorf("docstore: scan %s: %w", c.table, err)
	}
	defer rs.Close()

	var out []row[T]
	for rs.Next() {
		var id, raw string
		if err := rs.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("docstore: scan row in %s: %w", c.table, err)
		}
		var value T
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			return nil, fmt.Errorf("docstore: unmarshal row %s in %s: %w", id, c.table, err)
		}
		var doc Document
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, fmt.Errorf("docstore: unmarshal row %s in %s: %w", id, c.table, err)
		}
		out = append(out, row[T]{id: id, value: value, doc: doc})
	}
	return out, rs.Err()
}

// findRowLocked must be called with c.mu held.
func (c *Collection[T]) findRowLocked(ctx context.Context, q Query) (row[T], bool, error) {
	rows, err := c.scan(ctx)
	if err != nil {
		return row[T]{}, false, err
	}
	for _, r := range rows {
		if q.Matches(r.doc) {
			return r, true, nil
		}
	}
	return row[T]{}, false, nil
}

// writeRowLocked re-marshals r.doc (the mutated generic view) back onto
// r.value and persists it. Must be called with c.mu held.
func (c *Collection[T]) writeRowLocked(ctx context.Context, r row[T]) error {
	raw, err := json.Marshal(r.doc)
	if err != nil {
		return fmt.Errorf("docstore: marshal: %w", err)
	}
	if err := json.Unmarshal(raw, &r.value); err != nil {
		return fmt.Errorf("docstore: unmarshal mutated doc: %w", err)
	}
	_, err = c.store.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE %q SET doc = ? WHERE id = ?`, c.table),
		string(raw), r.id)
	if err != nil {
		return fmt.Errorf("docstore: update %s: %w", c.table, err)
	}
	return nil
}
