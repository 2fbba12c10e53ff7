package meshedit

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"

	"github.com/gekko3d/meshedit/scene"
)

var (
	// ErrNodeLocked is returned when a locked node is asked to be deleted.
	ErrNodeLocked = errors.New("node is locked")
	ErrNoScene    = errors.New("no scene installed")
	ErrNilNode    = errors.New("nil node")

	// ErrOperationInProgress is returned when an operation is started while
	// another one is still running.
	ErrOperationInProgress = errors.New("operation in progress")
)

// Commands applies editing intents coming from presenters to the scene and
// keeps the application state in sync. All commands run immediately.
type Commands struct {
	app *App
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

func (cmd *Commands) activeScene() (*scene.Scene, error) {
	s := cmd.app.Scene()
	if s == nil {
		return nil, ErrNoScene
	}
	return s, nil
}

func (cmd *Commands) modified() {
	if st := cmd.app.State(); st != nil {
		st.DocumentModified()
	}
}

// SpawnNode creates a node under parent, or as a root when parent is nil.
func (cmd *Commands) SpawnNode(name string, parent *scene.Node) (*scene.Node, error) {
	s, err := cmd.activeScene()
	if err != nil {
		return nil, err
	}
	n := s.NewNode(name)
	if parent != nil {
		if err := n.SetParent(parent); err != nil {
			_ = s.Remove(n)
			return nil, errors.Wrapf(err, "spawn %q", name)
		}
	}
	cmd.modified()
	return n, nil
}

func (cmd *Commands) RenameNode(n *scene.Node, name string) {
	if n == nil || n.Name() == name {
		return
	}
	n.SetName(name)
	cmd.modified()
}

func (cmd *Commands) SetNodeVisible(n *scene.Node, visible bool) {
	if n == nil || n.IsVisible() == visible {
		return
	}
	n.SetVisible(visible)
	cmd.modified()
}

func (cmd *Commands) SetNodeLocked(n *scene.Node, locked bool) {
	if n == nil || n.IsLocked() == locked {
		return
	}
	n.SetLocked(locked)
	cmd.modified()
	if sel := cmd.app.Selection(); sel != nil && sel.Contains(n) {
		cmd.syncSelectionState(sel)
	}
}

func (cmd *Commands) ReparentNode(n, parent *scene.Node) error {
	if n == nil {
		return ErrNilNode
	}
	if n.Parent() == parent {
		return nil
	}
	if err := n.SetParent(parent); err != nil {
		cmd.app.Logger().Warnf("reparent %s: %v", n, err)
		return err
	}
	cmd.modified()
	return nil
}

// DeleteNode removes n and its subtree. It is refused while n or any of its
// descendants is locked.
func (cmd *Commands) DeleteNode(n *scene.Node) error {
	if n == nil {
		return ErrNilNode
	}
	if locked := firstLocked(n); locked != nil {
		return errors.Wrapf(ErrNodeLocked, "delete %q: %q", n.Name(), locked.Name())
	}
	s, err := cmd.activeScene()
	if err != nil {
		return err
	}
	if err := s.Remove(n); err != nil {
		return err
	}
	cmd.modified()
	return nil
}

func firstLocked(n *scene.Node) *scene.Node {
	var locked *scene.Node
	n.Walk(func(d *scene.Node) bool {
		if locked == nil && d.IsLocked() {
			locked = d
		}
		return locked == nil
	})
	return locked
}

// DuplicateNode clones n's subtree next to n and selects the copy.
func (cmd *Commands) DuplicateNode(n *scene.Node) (*scene.Node, error) {
	if n == nil {
		return nil, ErrNilNode
	}
	s, err := cmd.activeScene()
	if err != nil {
		return nil, err
	}
	dup, err := s.Duplicate(n)
	if err != nil {
		return nil, err
	}
	if cfg, ok := Resource[Config](cmd.app); ok && cfg.Editor.DuplicateSuffix != "" {
		dup.SetName(n.Name() + cfg.Editor.DuplicateSuffix)
	}
	log := cmd.app.Logger()
	if log.DebugEnabled() {
		log.Debugf("duplicated %s:\n%s", n, spew.Sdump(dup.State()))
	}
	cmd.modified()
	cmd.Select(SourceHierarchy, dup)
	return dup, nil
}

// RunOperation marks a long-running editing operation in the application
// state for the duration of fn. Operations do not nest.
func (cmd *Commands) RunOperation(name string, fn func() error) error {
	st := cmd.app.State()
	if st == nil {
		return fn()
	}
	if st.IsOperationInProgress {
		return errors.Wrapf(ErrOperationInProgress, "start %q", name)
	}
	log := cmd.app.Logger()
	log.Debugf("operation %q started", name)
	st.OperationStarted()
	defer func() {
		st.OperationCompleted()
		log.Debugf("operation %q completed", name)
	}()
	return errors.Wrapf(fn(), "operation %q", name)
}

func (cmd *Commands) Select(source SelectionSource, nodes ...*scene.Node) {
	sel := cmd.app.Selection()
	if sel == nil {
		return
	}
	sel.Set(source, nodes...)
}

func (cmd *Commands) SelectTool(tool ToolType) {
	if st := cmd.app.State(); st != nil {
		st.ToolSelected(tool)
	}
}

func (cmd *Commands) syncSelectionState(sel *Selection) {
	if st := cmd.app.State(); st != nil {
		st.SelectionChanged(sel.Len() > 0, sel.CanModify())
	}
}
