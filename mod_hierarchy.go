package meshedit

import (
	"github.com/gekko3d/meshedit/scene"
)

// HierarchyModule installs the scene, the shared selection and the
// application state. Install LoggingModule first to get scene diagnostics.
type HierarchyModule struct {
	DefaultTool ToolType
}

func (m HierarchyModule) Install(app *App, cmd *Commands) {
	s := app.Scene()
	if s == nil {
		s = scene.New(scene.WithLogger(app.Logger()))
		cmd.AddResources(s)
	}

	sel := NewSelection(s)
	cmd.AddResources(NewApplicationState(m.DefaultTool), sel)

	sel.OnChange(func(nodes []*scene.Node, source SelectionSource) {
		cmd.syncSelectionState(sel)
	})
}
