package docstore

import (
	"context"
	"path/filepath"
	"testing"
)

type widget struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int32  `json:"count"`
}

func (w *widget) GetID() string   { return w.ID }
func (w *widget) SetID(id string) { w.ID = id }

func newTestCollection(t *testing.T) *Collection[*widget] {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	col, err := NewCollection[*widget](store, "widgets")
	if err != nil {
		t.Fatalf("new collection: %v", err)
	}
	return col
}

func TestInsertAndFindOne(t *testing.T) {
	ctx := context.Background()
	col := newTestCollection(t)

	id, err := col.InsertOne(ctx, &widget{Name: "gear", Count: 1})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	found, ok, err := col.FindOne(ctx, ByID(id))
	if err != nil || !ok {
		t.Fatalf("find one: ok=%v err=%v", ok, err)
	}
	if found.Name != "gear" {
		t.Fatalf("expected gear, got %s", found.Name)
	}
}

func TestFindOneAndUpdateIncrementsAtomically(t *testing.T) {
	ctx := context.Background()
	col := newTestCollection(t)

	id, _ := col.InsertOne(ctx, &widget{Name: "counter", Count: 0})

	updated, ok, err := col.FindOneAndUpdate(ctx, ByID(id), Inc("count", 1))
	if err != nil || !ok {
		t.Fatalf("find one and update: ok=%v err=%v", ok, err)
	}
	if updated.Count != 1 {
		t.Fatalf("expected count=1, got %d", updated.Count)
	}

	again, _, _ := col.FindOneAndUpdate(ctx, ByID(id), Inc("count", 1))
	if again.Count != 2 {
		t.Fatalf("expected count=2 on second increment, got %d", again.Count)
	}
}

func TestFindRandomWithoutDuplicatesReturnsFewerThanRequested(t *testing.T) {
	ctx := context.Background()
	col := newTestCollection(t)
	col.InsertOne(ctx, &widget{Name: "only-one"})

	drawn, err := col.FindRandom(ctx, Empty(), 3, false)
	if err != nil {
		t.Fatalf("find random: %v", err)
	}
	if len(drawn) != 1 {
		t.Fatalf("expected exactly 1 draw from a catalog of 1, got %d", len(drawn))
	}
}

func TestUpdateOneNoMatchReturnsFalse(t *testing.T) {
	ctx := context.Background()
	col := newTestCollection(t)

	matched, err := col.UpdateOne(ctx, ByID("nonexistent"), Set("name", "x"))
	if err != nil {
		t.Fatalf("update one: %v", err)
	}
	if matched {
		t.Fatal("expected no match")
	}
}

func TestFindReturnsAllMatches(t *testing.T) {
	ctx := context.Background()
	col := newTestCollection(t)
	col.InsertOne(ctx, &widget{Name: "gear", Count: 1})
	col.InsertOne(ctx, &widget{Name: "gear", Count: 2})
	col.InsertOne(ctx, &widget{Name: "bolt", Count: 1})

	found, err := col.Find(ctx, Eq("name", "gear"))
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("expected 2 gears, got %d", len(found))
	}
}

func TestReplaceOnePreservesID(t *testing.T) {
	ctx := context.Background()
	col := newTestCollection(t)
	id, _ := col.InsertOne(ctx, &widget{Name: "gear", Count: 1})

	ok, err := col.ReplaceOne(ctx, ByID(id), &widget{Name: "sprocket", Count: 99})
	if err != nil || !ok {
		t.Fatalf("replace one: ok=%v err=%v", ok, err)
	}

	found, ok, err := col.FindOne(ctx, ByID(id))
	if err != nil || !ok {
		t.Fatalf("find one: ok=%v err=%v", ok, err)
	}
	if found.ID != id {
		t.Fatalf("expected id to be preserved across replace, got %s", found.ID)
	}
	if found.Name != "sprocket" || found.Count != 99 {
		t.Fatalf("expected replaced fields, got %+v", found)
	}
}

func TestFindRandomWithDuplicatesReturnsExactCount(t *testing.T) {
	ctx := context.Background()
	col := newTestCollection(t)
	col.InsertOne(ctx, &widget{Name: "only-one"})

	drawn, err := col.FindRandom(ctx, Empty(), 5, true)
	if err != nil {
		t.Fatalf("find random: %v", err)
	}
	if len(drawn) != 5 {
		t.Fatalf("expected exactly 5 draws when duplicates are allowed, got %d", len(drawn))
	}
}

func TestFindRandomOnEmptyCollectionReturnsNothing(t *testing.T) {
	ctx := context.Background()
	col := newTestCollection(t)

	drawn, err := col.FindRandom(ctx, Empty(), 3, false)
	if err != nil {
		t.Fatalf("find random: %v", err)
	}
	if len(drawn) != 0 {
		t.Fatalf("expected no draws from an empty collection, got %d", len(drawn))
	}
}
