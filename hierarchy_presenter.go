package meshedit

import (
	"github.com/pkg/errors"

	"github.com/gekko3d/meshedit/scene"
)

// HierarchyView is the hierarchy panel as seen by its presenter. Concrete
// widgets live outside this module.
type HierarchyView interface {
	SetObjects(roots []*scene.Node)
	AddObject(n *scene.Node)
	RemoveObject(n *scene.Node)
	UpdateObject(n *scene.Node)
	UpdateSelection(selected []*scene.Node)
	EnsureVisible(n *scene.Node)
	BeginRename(n *scene.Node)
	ShowError(message string)
}

// HierarchyPresenter keeps a HierarchyView in sync with the scene and turns
// view intents into Commands.
type HierarchyPresenter struct {
	view  HierarchyView
	cmd   *Commands
	scene *scene.Scene

	propSub       scene.Subscription
	watchSub      scene.Subscription
	stopSelection func()
}

func NewHierarchyPresenter(view HierarchyView, cmd *Commands) (*HierarchyPresenter, error) {
	if view == nil {
		return nil, errors.New("hierarchy presenter: nil view")
	}
	if cmd == nil {
		return nil, errors.New("hierarchy presenter: nil commands")
	}
	s, err := cmd.activeScene()
	if err != nil {
		return nil, errors.Wrap(err, "hierarchy presenter")
	}

	p := &HierarchyPresenter{view: view, cmd: cmd, scene: s}
	p.propSub = s.Subscribe(scene.ObserverFunc(p.onPropertyChanged),
		scene.PropName, scene.PropVisible, scene.PropLocked, scene.PropParent)
	p.watchSub = s.Watch(p.onSceneEvent)
	if sel := cmd.app.Selection(); sel != nil {
		p.stopSelection = sel.OnChange(func(nodes []*scene.Node, source SelectionSource) {
			p.view.UpdateSelection(nodes)
		})
	}
	return p, nil
}

// Close detaches the presenter from the scene and the selection.
func (p *HierarchyPresenter) Close() {
	p.scene.Unsubscribe(p.propSub)
	p.scene.Unwatch(p.watchSub)
	if p.stopSelection != nil {
		p.stopSelection()
		p.stopSelection = nil
	}
}

func (p *HierarchyPresenter) Refresh() {
	p.view.SetObjects(p.scene.Roots())
}

func (p *HierarchyPresenter) onPropertyChanged(n *scene.Node, prop scene.Property) {
	if prop == scene.PropParent {
		p.Refresh()
		return
	}
	p.view.UpdateObject(n)
}

func (p *HierarchyPresenter) onSceneEvent(ev scene.Event) {
	switch ev.Kind {
	case scene.NodeAdded:
		p.view.AddObject(ev.Node)
	case scene.NodeRemoved:
		p.view.RemoveObject(ev.Node)
	}
}

// View intents.

func (p *HierarchyPresenter) ViewLoaded() {
	p.Refresh()
}

func (p *HierarchyPresenter) ObjectSelected(n *scene.Node) {
	if n == nil {
		p.cmd.Select(SourceHierarchy)
		return
	}
	p.cmd.Select(SourceHierarchy, n)
	p.view.EnsureVisible(n)
}

func (p *HierarchyPresenter) RenameRequested(n *scene.Node) {
	if n != nil {
		p.view.BeginRename(n)
	}
}

func (p *HierarchyPresenter) ObjectRenamed(n *scene.Node, name string) {
	p.cmd.RenameNode(n, name)
}

func (p *HierarchyPresenter) ObjectVisibilityChanged(n *scene.Node, visible bool) {
	p.cmd.SetNodeVisible(n, visible)
}

func (p *HierarchyPresenter) ObjectLockStateChanged(n *scene.Node, locked bool) {
	p.cmd.SetNodeLocked(n, locked)
}

// ObjectParentChanged handles a drag and drop onto newParent (nil for the root level).
func (p *HierarchyPresenter) ObjectParentChanged(n, newParent *scene.Node) {
	if n == nil {
		return
	}
	if err := p.cmd.ReparentNode(n, newParent); err != nil {
		if errors.Is(err, scene.ErrInvalidHierarchy) {
			p.view.ShowError("Cannot move an object into one of its own children.")
			return
		}
		p.view.ShowError(err.Error())
	}
}

func (p *HierarchyPresenter) DeleteRequested(n *scene.Node) {
	if n == nil {
		return
	}
	if err := p.cmd.DeleteNode(n); err != nil {
		if errors.Is(err, ErrNodeLocked) {
			if n.IsLocked() {
				p.view.ShowError("Object \"" + n.Name() + "\" is locked and cannot be deleted.")
			} else {
				p.view.ShowError("Object \"" + n.Name() + "\" contains locked objects and cannot be deleted.")
			}
			return
		}
		p.view.ShowError(err.Error())
	}
}

func (p *HierarchyPresenter) DuplicateRequested(n *scene.Node) {
	if n == nil {
		return
	}
	dup, err := p.cmd.DuplicateNode(n)
	if err != nil {
		p.view.ShowError(err.Error())
		return
	}
	p.view.EnsureVisible(dup)
}
