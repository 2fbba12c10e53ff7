package meshedit

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/meshedit/scene"
)

type mockMainView struct {
	hierarchy HierarchyView

	titles      []string
	states      []ApplicationState
	openPath    string
	savePath    string
	saveAnswer  DialogResult
	saveAsked   int
	openDialogs int
	saveDialogs int
	errors      []string
}

func (v *mockMainView) HierarchyView() HierarchyView { return v.hierarchy }
func (v *mockMainView) UpdateTitle(path string)      { v.titles = append(v.titles, path) }
func (v *mockMainView) UpdateCommandState(state ApplicationState) {
	v.states = append(v.states, state)
}
func (v *mockMainView) ShowOpenFileDialog() string {
	v.openDialogs++
	return v.openPath
}
func (v *mockMainView) ShowSaveFileDialog() string {
	v.saveDialogs++
	return v.savePath
}
func (v *mockMainView) ShowSaveChangesDialog() DialogResult {
	v.saveAsked++
	return v.saveAnswer
}
func (v *mockMainView) ShowError(message string) { v.errors = append(v.errors, message) }

func (v *mockMainView) lastState() ApplicationState {
	return v.states[len(v.states)-1]
}

// mockFileService records paths; OpenFile spawns a node named load.
type mockFileService struct {
	opened  []string
	saved   []string
	openErr error
	saveErr error
	load    string
}

func (f *mockFileService) OpenFile(path string, s *scene.Scene) error {
	f.opened = append(f.opened, path)
	if f.openErr != nil {
		return f.openErr
	}
	if f.load != "" {
		s.NewNode(f.load)
	}
	return nil
}

func (f *mockFileService) SaveFile(path string, s *scene.Scene) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, path)
	return nil
}

func newMainPresenter(t *testing.T) (*App, *mockMainView, *mockFileService, *MainPresenter) {
	t.Helper()
	app := NewAppBuilder().UseModule(HierarchyModule{}).Build()
	view := &mockMainView{}
	files := &mockFileService{}
	p, err := NewMainPresenter(view, files, app.Commands())
	require.NoError(t, err)
	return app, view, files, p
}

func TestNewMainPresenter_Errors(t *testing.T) {
	app := NewAppBuilder().UseModule(HierarchyModule{}).Build()
	_, err := NewMainPresenter(nil, &mockFileService{}, app.Commands())
	assert.Error(t, err)
	_, err = NewMainPresenter(&mockMainView{}, nil, app.Commands())
	assert.Error(t, err)
	_, err = NewMainPresenter(&mockMainView{}, &mockFileService{}, nil)
	assert.Error(t, err)

	bare := NewAppBuilder().Build()
	_, err = NewMainPresenter(&mockMainView{}, &mockFileService{}, bare.Commands())
	assert.ErrorIs(t, err, ErrNoScene)
}

func TestMainPresenter_NewFileAndEdit(t *testing.T) {
	app, view, _, p := newMainPresenter(t)

	p.ViewLoaded()
	require.NotEmpty(t, view.states)
	assert.False(t, view.lastState().HasOpenDocument)

	p.NewFileRequested()
	assert.Zero(t, view.saveAsked)
	assert.True(t, view.lastState().HasOpenDocument)
	assert.False(t, view.lastState().HasUnsavedChanges)
	assert.Empty(t, view.lastState().CurrentDocumentPath)

	// Direct node edits count as document changes too.
	n := app.Scene().NewNode("cube")
	assert.True(t, app.State().HasUnsavedChanges)
	assert.True(t, view.lastState().HasUnsavedChanges)

	app.State().DocumentSaved("")
	n.SetPosition(n.Position().Add(n.Scale()))
	assert.True(t, app.State().HasUnsavedChanges)
}

func TestMainPresenter_OpenAndSave(t *testing.T) {
	app, view, files, p := newMainPresenter(t)
	view.openPath = "/tmp/a.mesh"
	files.load = "loaded"

	p.OpenFileRequested()
	assert.Equal(t, []string{"/tmp/a.mesh"}, files.opened)
	assert.True(t, app.State().HasOpenDocument)
	assert.False(t, app.State().HasUnsavedChanges, "loading does not dirty the document")
	assert.Equal(t, "/tmp/a.mesh", view.titles[len(view.titles)-1])
	require.Len(t, app.Scene().Roots(), 1)
	assert.Equal(t, "loaded", app.Scene().Roots()[0].Name())

	_, err := app.Commands().SpawnNode("extra", nil)
	require.NoError(t, err)
	assert.True(t, app.State().HasUnsavedChanges)

	p.SaveRequested()
	assert.Zero(t, view.saveDialogs, "known path is saved without asking")
	assert.Equal(t, []string{"/tmp/a.mesh"}, files.saved)
	assert.False(t, app.State().HasUnsavedChanges)

	view.savePath = "/tmp/b.mesh"
	p.SaveAsRequested()
	assert.Equal(t, 1, view.saveDialogs)
	assert.Equal(t, "/tmp/b.mesh", app.State().CurrentDocumentPath)
	assert.Equal(t, "/tmp/b.mesh", view.titles[len(view.titles)-1])
}

func TestMainPresenter_SaveUntitledAsksForPath(t *testing.T) {
	app, view, files, p := newMainPresenter(t)
	p.NewFileRequested()

	p.SaveRequested()
	assert.Equal(t, 1, view.saveDialogs)
	assert.Empty(t, files.saved, "cancelled dialog saves nothing")

	view.savePath = "/tmp/new.mesh"
	p.SaveRequested()
	assert.Equal(t, []string{"/tmp/new.mesh"}, files.saved)
	assert.Equal(t, "/tmp/new.mesh", app.State().CurrentDocumentPath)
}

func TestMainPresenter_FileErrors(t *testing.T) {
	app, view, files, p := newMainPresenter(t)
	p.NewFileRequested()
	app.Scene().NewNode("a")

	files.saveErr = errors.New("disk full")
	view.savePath = "/tmp/a.mesh"
	p.SaveRequested()
	require.Len(t, view.errors, 1)
	assert.Contains(t, view.errors[0], "Failed to save file: disk full")
	assert.True(t, app.State().HasUnsavedChanges)

	view.saveAnswer = DialogNo
	files.openErr = errors.New("bad header")
	view.openPath = "/tmp/broken.mesh"
	p.OpenFileRequested()
	require.Len(t, view.errors, 2)
	assert.Contains(t, view.errors[1], "Failed to open file: bad header")
	assert.False(t, app.State().HasOpenDocument)
	assert.Zero(t, app.Scene().Len())
}

func TestMainPresenter_PromptSaveChanges(t *testing.T) {
	app, view, files, p := newMainPresenter(t)
	view.openPath = "/tmp/a.mesh"
	p.OpenFileRequested()
	keep := app.Scene().NewNode("keep")
	require.True(t, app.State().HasUnsavedChanges)

	// Cancel abandons the new document.
	view.saveAnswer = DialogCancel
	p.NewFileRequested()
	assert.Equal(t, 1, view.saveAsked)
	assert.False(t, keep.Removed())
	assert.True(t, app.State().HasUnsavedChanges)
	assert.Empty(t, files.saved)

	// Yes saves first, then proceeds.
	view.saveAnswer = DialogYes
	p.NewFileRequested()
	assert.Equal(t, 2, view.saveAsked)
	assert.Equal(t, []string{"/tmp/a.mesh"}, files.saved)
	assert.True(t, keep.Removed())
	assert.Empty(t, app.State().CurrentDocumentPath)
	assert.False(t, app.State().HasUnsavedChanges)

	// Yes on an untitled document whose save dialog is cancelled aborts.
	app.Scene().NewNode("draft")
	view.savePath = ""
	assert.False(t, p.CloseRequested())
	assert.True(t, app.State().HasOpenDocument)

	// No discards the changes.
	view.saveAnswer = DialogNo
	assert.True(t, p.CloseRequested())
	assert.False(t, app.State().HasOpenDocument)
	assert.Len(t, files.saved, 1)
}

func TestMainPresenter_OperationsAndTools(t *testing.T) {
	app, view, _, p := newMainPresenter(t)
	cmd := app.Commands()

	var during ApplicationState
	err := cmd.RunOperation("extrude", func() error {
		during = view.lastState()
		return cmd.RunOperation("nested", func() error { return nil })
	})
	assert.ErrorIs(t, err, ErrOperationInProgress)
	assert.True(t, during.IsOperationInProgress)
	assert.False(t, view.lastState().IsOperationInProgress)

	p.ToolSelected(ToolRotate)
	assert.Equal(t, ToolRotate, view.lastState().CurrentTool)

	n, _ := cmd.SpawnNode("n", nil)
	p.ObjectSelected(n)
	assert.Equal(t, []*scene.Node{n}, app.Selection().Nodes())
	assert.Equal(t, SourceViewport, app.Selection().Source())
	assert.True(t, view.lastState().HasSelection)

	p.ObjectSelected(nil)
	assert.False(t, view.lastState().HasSelection)
}

func TestMainPresenter_HierarchyChild(t *testing.T) {
	app := NewAppBuilder().UseModule(HierarchyModule{}).Build()
	hv := &mockHierarchyView{}
	view := &mockMainView{hierarchy: hv}
	p, err := NewMainPresenter(view, &mockFileService{}, app.Commands())
	require.NoError(t, err)
	require.NotNil(t, p.Hierarchy())

	app.Scene().NewNode("a")
	p.ViewLoaded()
	assert.Equal(t, []string{"a"}, hv.added)
	assert.Equal(t, 1, hv.setCalls)

	p.Close()
	app.Scene().NewNode("b")
	app.State().ToolSelected(ToolMove)
	assert.Equal(t, []string{"a"}, hv.added)
	assert.NotEqual(t, ToolMove, view.lastState().CurrentTool)
}
