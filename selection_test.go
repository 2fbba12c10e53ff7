package meshedit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/meshedit/scene"
)

func TestSelection_Set(t *testing.T) {
	s := scene.New()
	a := s.NewNode("a")
	b := s.NewNode("b")
	sel := NewSelection(s)

	calls := 0
	sel.OnChange(func(nodes []*scene.Node, source SelectionSource) { calls++ })

	sel.Set(SourceViewport, a, nil, b, a)
	assert.Equal(t, []*scene.Node{a, b}, sel.Nodes())
	assert.Equal(t, SourceViewport, sel.Source())
	assert.Equal(t, 1, calls)

	sel.Set(SourceViewport, a, b)
	assert.Equal(t, 1, calls, "same nodes and source do not notify")

	var gotSource SelectionSource
	sel.OnChange(func(nodes []*scene.Node, source SelectionSource) { gotSource = source })
	sel.Set(SourceHierarchy, a, b)
	assert.Equal(t, 2, calls)
	assert.Equal(t, SourceHierarchy, sel.Source())
	assert.Equal(t, SourceHierarchy, gotSource)

	sel.Clear()
	assert.Zero(t, sel.Len())
	assert.Equal(t, 3, calls)
}

func TestSelection_DropsRemovedNodes(t *testing.T) {
	s := scene.New()
	a := s.NewNode("a")
	child := s.NewNode("child")
	b := s.NewNode("b")
	require.NoError(t, child.SetParent(a))

	sel := NewSelection(s)
	sel.Set(SourceHierarchy, child, b)

	var last []*scene.Node
	stop := sel.OnChange(func(nodes []*scene.Node, source SelectionSource) { last = nodes })

	require.NoError(t, s.Remove(a))
	assert.Equal(t, []*scene.Node{b}, sel.Nodes())
	assert.Equal(t, []*scene.Node{b}, last)

	stop()
	sel.Clear()
	assert.Equal(t, []*scene.Node{b}, last)
}

func TestSelection_CanModify(t *testing.T) {
	s := scene.New()
	a := s.NewNode("a")
	b := s.NewNode("b")
	sel := NewSelection(s)

	assert.False(t, sel.CanModify())
	sel.Set(SourceHierarchy, a, b)
	assert.True(t, sel.CanModify())
	b.SetLocked(true)
	assert.False(t, sel.CanModify())
}
