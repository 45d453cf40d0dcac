// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/tetralith/mesh2pdf/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(types.CatalogConfig{HistoryDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestAppendAssignsID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := &Record{
		Input:    "models/bunny.obj",
		U3DPath:  "output/u3d/bunny.u3d",
		Vertices: 2503,
		FacesIn:  4968,
		FacesOut: 4968,
		Status:   "done",
	}
	require.NoError(t, store.Append(ctx, rec))

	assert.NotZero(t, rec.ID)
	assert.False(t, rec.CreatedAt.IsZero(), "CreatedAt should default to now")
}

func TestListNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, input := range []string{"a.obj", "b.stl", "c.obj"} {
		rec := &Record{Input: input, Status: "done", CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, store.Append(ctx, rec))
	}

	records, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "c.obj", records[0].Input)
	assert.Equal(t, "b.stl", records[1].Input)
	assert.Equal(t, "a.obj", records[2].Input)
}

func TestListOrdersAcrossSubsecondTimestamps(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// A whole-second timestamp and one half a second later. Lexical
	// RFC3339 ordering would put these the wrong way around.
	whole := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	later := whole.Add(500 * time.Millisecond)

	require.NoError(t, store.Append(ctx, &Record{Input: "old.obj", Status: "done", CreatedAt: whole}))
	require.NoError(t, store.Append(ctx, &Record{Input: "new.obj", Status: "done", CreatedAt: later}))

	records, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "new.obj", records[0].Input)
	assert.Equal(t, "old.obj", records[1].Input)
}

func TestListLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Append(ctx, &Record{Input: "m.obj", Status: "done"}))
	}

	records, err := store.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestRoundTripFields(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	in := &Record{
		Input:          "scan.stl",
		U3DPath:        "out/u3d/scan.u3d",
		PDFPath:        "out/scan_3d.pdf",
		Vertices:       120,
		FacesIn:        500,
		FacesOut:       200,
		Cleaned:        true,
		SimplifyTarget: 200,
		Status:         "partial",
		DurationMS:     1234,
	}
	require.NoError(t, store.Append(ctx, in))

	records, err := store.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, in.Input, got.Input)
	assert.Equal(t, in.U3DPath, got.U3DPath)
	assert.Equal(t, in.PDFPath, got.PDFPath)
	assert.Equal(t, in.Vertices, got.Vertices)
	assert.Equal(t, in.FacesIn, got.FacesIn)
	assert.Equal(t, in.FacesOut, got.FacesOut)
	assert.True(t, got.Cleaned)
	assert.Equal(t, in.SimplifyTarget, got.SimplifyTarget)
	assert.Equal(t, in.Status, got.Status)
	assert.Equal(t, in.DurationMS, got.DurationMS)
	assert.True(t, in.CreatedAt.Equal(got.CreatedAt))
}

func TestExportYAML(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Append(ctx, &Record{Input: "bunny.obj", Status: "done"}))

	path := filepath.Join(t.TempDir(), "export.yaml")
	require.NoError(t, store.ExportYAML(ctx, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var records []Record
	require.NoError(t, yaml.Unmarshal(data, &records))
	require.Len(t, records, 1)
	assert.Equal(t, "bunny.obj", records[0].Input)
}

func TestExportJSON(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Append(ctx, &Record{Input: "bunny.obj", Status: "done"}))

	path := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, store.ExportJSON(ctx, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var records []Record
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 1)
	assert.Equal(t, "bunny.obj", records[0].Input)
}

func TestStoreReopens(t *testing.T) {
	dir := t.TempDir()
	cfg := types.CatalogConfig{HistoryDir: dir}
	ctx := context.Background()

	store, err := NewStore(cfg)
	require.NoError(t, err)
	require.NoError(t, store.Append(ctx, &Record{Input: "first.obj", Status: "done"}))
	require.NoError(t, store.Close())

	store, err = NewStore(cfg)
	require.NoError(t, err)
	defer store.Close()

	records, err := store.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
