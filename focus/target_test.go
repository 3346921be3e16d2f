package focus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oodx/room/zone"
)

func TestControllerFocusAndRelease(t *testing.T) {
	mgr := NewManager()
	c := NewController(mgr, "owner-a")

	prev := c.Focus(zone.ID("prompt"), "")
	assert.Nil(t, prev)
	require.NotNil(t, mgr.Current())
	assert.Equal(t, zone.ID("prompt"), mgr.Current().Zone)

	prev = c.Release()
	require.NotNil(t, prev)
	assert.Equal(t, zone.ID("prompt"), prev.Zone)
	assert.Nil(t, mgr.Current())
}

func TestStaleOwnerCannotReleaseNewerFocus(t *testing.T) {
	mgr := NewManager()
	a := NewController(mgr, "owner-a")
	b := NewController(mgr, "owner-b")

	a.Focus(zone.ID("left"), "")
	b.Focus(zone.ID("right"), "")

	// a no longer owns focus; its Release must be a no-op.
	prev := a.Release()
	assert.Nil(t, prev)
	require.NotNil(t, mgr.Current())
	assert.Equal(t, zone.ID("right"), mgr.Current().Zone)
}
