package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmoreno/cadet/internal/parser"
)

func openTestHistory(t *testing.T) *History {
	t.Helper()
	h, err := OpenHistory(filepath.Join(t.TempDir(), "cadet.db"))
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })
	return h
}

func TestHistorySaveAndList(t *testing.T) {
	h := openTestHistory(t)
	ctx := context.Background()

	cmd := parser.ParseRule("extrude a cylinder 20mm diameter 30mm tall")
	record, err := h.Save(ctx, "extrude a cylinder 20mm diameter 30mm tall", cmd)
	require.NoError(t, err)
	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "extrude", record.Action)

	records, err := h.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, record.ID, got.ID)
	assert.Equal(t, "extrude a cylinder 20mm diameter 30mm tall", got.Prompt)
	assert.Equal(t, cmd.Action, got.Command.Action)
	assert.Equal(t, cmd.Shape, got.Command.Shape)
	require.NotNil(t, got.Command.Params.DiameterMM)
	assert.Equal(t, 20.0, *got.Command.Params.DiameterMM)
	require.NotNil(t, got.Command.Params.HeightMM)
	assert.Equal(t, 30.0, *got.Command.Params.HeightMM)
}

func TestHistoryListNewestFirst(t *testing.T) {
	h := openTestHistory(t)
	ctx := context.Background()

	prompts := []string{"create a plate", "drill a hole", "fillet the edges"}
	for _, p := range prompts {
		_, err := h.Save(ctx, p, parser.ParseRule(p))
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}

	records, err := h.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "fillet the edges", records[0].Prompt)
	assert.Equal(t, "create a plate", records[2].Prompt)
}

func TestHistoryListLimit(t *testing.T) {
	h := openTestHistory(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := h.Save(ctx, "drill a hole", parser.ParseRule("drill a hole"))
		require.NoError(t, err)
	}

	records, err := h.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	count, err := h.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestHistoryEmptyList(t *testing.T) {
	h := openTestHistory(t)

	records, err := h.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestHistoryReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cadet.db")
	ctx := context.Background()

	h, err := OpenHistory(path)
	require.NoError(t, err)
	_, err = h.Save(ctx, "create a sphere", parser.ParseRule("create a sphere"))
	require.NoError(t, err)
	require.NoError(t, h.Close())

	h, err = OpenHistory(path)
	require.NoError(t, err)
	defer h.Close()

	records, err := h.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "create a sphere", records[0].Prompt)
}
