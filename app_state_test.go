package meshedit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplicationState_DocumentLifecycle(t *testing.T) {
	s := NewApplicationState(ToolSelect)

	s.DocumentModified()
	assert.False(t, s.HasUnsavedChanges, "modifications without a document are ignored")

	s.DocumentOpened("/tmp/a.mesh")
	assert.True(t, s.HasOpenDocument)
	assert.Equal(t, "/tmp/a.mesh", s.CurrentDocumentPath)

	s.DocumentModified()
	assert.True(t, s.HasUnsavedChanges)

	s.DocumentSaved("/tmp/b.mesh")
	assert.False(t, s.HasUnsavedChanges)
	assert.Equal(t, "/tmp/b.mesh", s.CurrentDocumentPath)

	s.ToolSelected(ToolExtrude)
	s.DocumentClosed()
	assert.False(t, s.HasOpenDocument)
	assert.Empty(t, s.CurrentDocumentPath)
	assert.Equal(t, ToolSelect, s.CurrentTool)
}

func TestApplicationState_SelectionAndOperations(t *testing.T) {
	s := NewApplicationState(ToolMove)
	assert.Equal(t, ToolMove, s.CurrentTool)

	s.SelectionChanged(false, true)
	assert.False(t, s.HasSelection)
	assert.False(t, s.CanModifySelection)

	s.SelectionChanged(true, true)
	assert.True(t, s.CanModifySelection)

	s.OperationStarted()
	assert.True(t, s.IsOperationInProgress)
	s.OperationCompleted()
	assert.False(t, s.IsOperationInProgress)
}

func TestToolType(t *testing.T) {
	for i := ToolSelect; i <= ToolAddPrimitive; i++ {
		parsed, err := ParseToolType(i.String())
		assert.NoError(t, err)
		assert.Equal(t, i, parsed)
	}

	tool, err := ParseToolType("createface")
	assert.NoError(t, err)
	assert.Equal(t, ToolCreateFace, tool)

	_, err = ParseToolType("lasso")
	assert.Error(t, err)
	assert.Equal(t, "Unknown", ToolType(42).String())
	assert.Equal(t, "Viewport", SourceViewport.String())
}
