package zone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyLayoutAddsAndEvicts(t *testing.T) {
	r := New()
	r.ApplyLayout(map[ID]Rect{"prompt": {0, 0, 10, 1}})
	require.Equal(t, 1, r.Len())

	dirty := r.IterDirty()
	require.Len(t, dirty, 1)
	assert.Equal(t, ID("prompt"), dirty[0].ID)
	assert.True(t, dirty[0].Dirty)

	for _, z := range dirty {
		r.MarkClean(z.ID, z.ContentHash)
	}
	assert.Empty(t, r.IterDirty())

	// Evict "prompt", add "status" — a zone absent from the new solve is gone.
	r.ApplyLayout(map[ID]Rect{"status": {0, 1, 10, 1}})
	_, ok := r.Get("prompt")
	assert.False(t, ok)
	assert.Equal(t, 1, r.Len())
}

func TestApplyLayoutIdempotentForSameSize(t *testing.T) {
	r := New()
	solve := map[ID]Rect{"a": {0, 0, 5, 1}, "b": {0, 1, 5, 1}}
	r.ApplyLayout(solve)
	for _, z := range r.IterDirty() {
		r.MarkClean(z.ID, z.ContentHash)
	}
	require.Empty(t, r.IterDirty())

	r.ApplyLayout(solve)
	assert.Empty(t, r.IterDirty(), "re-applying an identical solve must not flip any zone dirty")
}

func TestSetZoneDirtyOnlyOnChange(t *testing.T) {
	r := New()
	r.ApplyLayout(map[ID]Rect{"a": {0, 0, 5, 1}})
	for _, z := range r.IterDirty() {
		r.MarkClean(z.ID, z.ContentHash)
	}

	require.NoError(t, r.SetZone("a", []string{"hello"}, false))
	dirty := r.IterDirty()
	require.Len(t, dirty, 1)
	hash := dirty[0].ContentHash
	r.MarkClean("a", hash)

	require.NoError(t, r.SetZone("a", []string{"hello"}, false))
	assert.Empty(t, r.IterDirty(), "identical set_zone must not re-dirty the zone")

	require.NoError(t, r.SetZone("a", []string{"bye"}, false))
	assert.Len(t, r.IterDirty(), 1)
}

func TestSetZoneUnknownID(t *testing.T) {
	r := New()
	err := r.SetZone("missing", []string{"x"}, false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIterDirtyStableOrder(t *testing.T) {
	r := New()
	r.ApplyLayout(map[ID]Rect{"zebra": {0, 0, 1, 1}, "alpha": {0, 1, 1, 1}, "mid": {0, 2, 1, 1}})
	dirty := r.IterDirty()
	require.Len(t, dirty, 3)
	assert.Equal(t, []ID{"alpha", "mid", "zebra"}, []ID{dirty[0].ID, dirty[1].ID, dirty[2].ID})
}

func TestEmptySizeLayout(t *testing.T) {
	r := New()
	r.ApplyLayout(map[ID]Rect{})
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.IterDirty())
}
