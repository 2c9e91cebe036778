package feedback

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "feedback.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleFeedback() *Feedback {
	return &Feedback{
		Name:     "Asha",
		Email:    "asha@example.com",
		Category: CategoryDiabetes,
		Rating:   4,
		Message:  "The glucose guidance was helpful.",
	}
}

func TestSQLiteSaveAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	fb := sampleFeedback()
	require.NoError(t, store.Save(ctx, fb))
	assert.NotZero(t, fb.ID)

	got, err := store.Get(ctx, fb.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Asha", got.Name)
	assert.Equal(t, CategoryDiabetes, got.Category)
	assert.Equal(t, 4, got.Rating)
}

func TestSQLiteGetMissingReturnsNil(t *testing.T) {
	store := newTestStore(t)

	got, err := store.Get(context.Background(), 9999)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLiteSaveRejectsInvalid(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(fb *Feedback)
	}{
		{"missing name", func(fb *Feedback) { fb.Name = "" }},
		{"rating too low", func(fb *Feedback) { fb.Rating = 0 }},
		{"rating too high", func(fb *Feedback) { fb.Rating = 6 }},
		{"unknown category", func(fb *Feedback) { fb.Category = "billing" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := sampleFeedback()
			tt.mutate(fb)
			assert.Error(t, store.Save(ctx, fb))
		})
	}
}

func TestSQLiteListAndCount(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		fb := sampleFeedback()
		fb.Rating = i + 1
		require.NoError(t, store.Save(ctx, fb))
	}

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	all, err := store.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Newest first.
	assert.Equal(t, 3, all[0].Rating)
}

func TestSQLiteDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	fb := sampleFeedback()
	require.NoError(t, store.Save(ctx, fb))
	require.NoError(t, store.Delete(ctx, fb.ID))

	got, err := store.Get(ctx, fb.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLiteExportImportRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleFeedback()))

	var buf bytes.Buffer
	require.NoError(t, store.ExportJSON(ctx, &buf))

	other := newTestStore(t)
	imported, skipped, err := other.ImportJSON(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, imported)
	assert.Zero(t, skipped)

	count, err := other.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestSQLiteImportSkipsInvalidEntries(t *testing.T) {
	store := newTestStore(t)

	payload := `{"version":"1.0","count":2,"feedback":[
		{"name":"Ravi","category":"general","rating":5,"message":"ok"},
		{"name":"","category":"general","rating":5,"message":"anonymous"}
	]}`

	imported, skipped, err := store.ImportJSON(context.Background(), bytes.NewReader([]byte(payload)))
	require.NoError(t, err)
	assert.Equal(t, 1, imported)
	assert.Equal(t, 1, skipped)
}
