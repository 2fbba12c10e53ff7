package meshedit

import (
	"github.com/pkg/errors"

	"github.com/gekko3d/meshedit/scene"
)

// DialogResult is the answer to a yes/no/cancel prompt.
type DialogResult int

const (
	DialogCancel DialogResult = iota
	DialogYes
	DialogNo
)

// MainView is the editor window as seen by its presenter.
type MainView interface {
	// HierarchyView may return nil when the window has no hierarchy panel.
	HierarchyView() HierarchyView
	UpdateTitle(documentPath string)
	UpdateCommandState(state ApplicationState)
	// ShowOpenFileDialog and ShowSaveFileDialog return "" when cancelled.
	ShowOpenFileDialog() string
	ShowSaveFileDialog() string
	ShowSaveChangesDialog() DialogResult
	ShowError(message string)
}

// FileService loads and stores scenes. The file format is up to the
// implementation.
type FileService interface {
	OpenFile(path string, s *scene.Scene) error
	SaveFile(path string, s *scene.Scene) error
}

// MainPresenter drives the document lifecycle and keeps the window title and
// command state in sync with ApplicationState.
type MainPresenter struct {
	view  MainView
	files FileService
	cmd   *Commands
	scene *scene.Scene
	state *ApplicationState

	hierarchy *HierarchyPresenter

	propSub   scene.Subscription
	watchSub  scene.Subscription
	stopState func()
}

func NewMainPresenter(view MainView, files FileService, cmd *Commands) (*MainPresenter, error) {
	if view == nil {
		return nil, errors.New("main presenter: nil view")
	}
	if files == nil {
		return nil, errors.New("main presenter: nil file service")
	}
	if cmd == nil {
		return nil, errors.New("main presenter: nil commands")
	}
	s, err := cmd.activeScene()
	if err != nil {
		return nil, errors.Wrap(err, "main presenter")
	}
	st := cmd.app.State()
	if st == nil {
		return nil, errors.New("main presenter: no application state installed")
	}

	p := &MainPresenter{view: view, files: files, cmd: cmd, scene: s, state: st}
	if hv := view.HierarchyView(); hv != nil {
		if p.hierarchy, err = NewHierarchyPresenter(hv, cmd); err != nil {
			return nil, errors.Wrap(err, "main presenter")
		}
	}

	p.propSub = s.Subscribe(scene.ObserverFunc(func(*scene.Node, scene.Property) { p.sceneChanged() }),
		scene.PropName, scene.PropVisible, scene.PropLocked,
		scene.PropPosition, scene.PropRotation, scene.PropScale, scene.PropParent)
	p.watchSub = s.Watch(func(scene.Event) { p.sceneChanged() })
	p.stopState = st.OnChange(func(*ApplicationState) { p.updateView() })
	return p, nil
}

// Hierarchy returns the child presenter of the hierarchy panel, if any.
func (p *MainPresenter) Hierarchy() *HierarchyPresenter {
	return p.hierarchy
}

// Close detaches the presenter and its children.
func (p *MainPresenter) Close() {
	p.scene.Unsubscribe(p.propSub)
	p.scene.Unwatch(p.watchSub)
	if p.stopState != nil {
		p.stopState()
		p.stopState = nil
	}
	if p.hierarchy != nil {
		p.hierarchy.Close()
	}
}

func (p *MainPresenter) sceneChanged() {
	p.state.DocumentModified()
}

func (p *MainPresenter) updateView() {
	p.view.UpdateTitle(p.state.CurrentDocumentPath)
	p.view.UpdateCommandState(*p.state)
}

// View intents.

func (p *MainPresenter) ViewLoaded() {
	p.updateView()
	if p.hierarchy != nil {
		p.hierarchy.ViewLoaded()
	}
}

// NewFileRequested replaces the scene with an empty, untitled document.
func (p *MainPresenter) NewFileRequested() {
	if !p.promptSaveChanges() {
		return
	}
	p.scene.Clear()
	p.state.DocumentOpened("")
}

// OpenFileRequested loads a file chosen by the user into a cleared scene.
// A failed load leaves no document open.
func (p *MainPresenter) OpenFileRequested() {
	if !p.promptSaveChanges() {
		return
	}
	path := p.view.ShowOpenFileDialog()
	if path == "" {
		return
	}
	p.scene.Clear()
	if err := p.files.OpenFile(path, p.scene); err != nil {
		p.cmd.app.Logger().Warnf("open %s: %v", path, err)
		p.scene.Clear()
		p.state.DocumentClosed()
		p.view.ShowError("Failed to open file: " + err.Error())
		return
	}
	p.state.DocumentOpened(path)
}

// SaveRequested saves to the current path, asking for one when the document
// is untitled.
func (p *MainPresenter) SaveRequested() {
	if p.state.CurrentDocumentPath == "" {
		p.SaveAsRequested()
		return
	}
	p.saveDocument(p.state.CurrentDocumentPath)
}

func (p *MainPresenter) SaveAsRequested() {
	if path := p.view.ShowSaveFileDialog(); path != "" {
		p.saveDocument(path)
	}
}

func (p *MainPresenter) saveDocument(path string) {
	if err := p.files.SaveFile(path, p.scene); err != nil {
		p.cmd.app.Logger().Warnf("save %s: %v", path, err)
		p.view.ShowError("Failed to save file: " + err.Error())
		return
	}
	p.state.DocumentSaved(path)
}

// CloseRequested reports whether the window may close.
func (p *MainPresenter) CloseRequested() bool {
	if !p.promptSaveChanges() {
		return false
	}
	p.state.DocumentClosed()
	return true
}

func (p *MainPresenter) ObjectSelected(n *scene.Node) {
	if n == nil {
		p.cmd.Select(SourceViewport)
		return
	}
	p.cmd.Select(SourceViewport, n)
}

func (p *MainPresenter) ToolSelected(tool ToolType) {
	p.cmd.SelectTool(tool)
}

// promptSaveChanges returns false when the pending action should be abandoned.
func (p *MainPresenter) promptSaveChanges() bool {
	if !p.state.HasUnsavedChanges {
		return true
	}
	switch p.view.ShowSaveChangesDialog() {
	case DialogYes:
		p.SaveRequested()
		return !p.state.HasUnsavedChanges
	case DialogNo:
		return true
	default:
		return false
	}
}
