package meshedit

import (
	"slices"
	"strings"

	"github.com/pkg/errors"
)

type ToolType int

const (
	ToolSelect ToolType = iota
	ToolMove
	ToolRotate
	ToolScale
	ToolCreateVertex
	ToolCreateEdge
	ToolCreateFace
	ToolExtrude
	ToolMeasure
	ToolAddPrimitive
)

var toolNames = [...]string{
	ToolSelect:       "Select",
	ToolMove:         "Move",
	ToolRotate:       "Rotate",
	ToolScale:        "Scale",
	ToolCreateVertex: "CreateVertex",
	ToolCreateEdge:   "CreateEdge",
	ToolCreateFace:   "CreateFace",
	ToolExtrude:      "Extrude",
	ToolMeasure:      "Measure",
	ToolAddPrimitive: "AddPrimitive",
}

func (t ToolType) String() string {
	if t < 0 || int(t) >= len(toolNames) {
		return "Unknown"
	}
	return toolNames[t]
}

// ParseToolType accepts tool names case-insensitively.
func ParseToolType(name string) (ToolType, error) {
	for i, n := range toolNames {
		if strings.EqualFold(n, name) {
			return ToolType(i), nil
		}
	}
	return ToolSelect, errors.Errorf("unknown tool %q", name)
}

// SelectionSource names the panel a selection came from.
type SelectionSource int

const (
	SourceHierarchy SelectionSource = iota
	SourceViewport
	SourceLibrary
)

func (s SelectionSource) String() string {
	switch s {
	case SourceHierarchy:
		return "Hierarchy"
	case SourceViewport:
		return "Viewport"
	case SourceLibrary:
		return "Library"
	default:
		return "Unknown"
	}
}

// ApplicationState tracks document, selection and tool state used to enable
// or disable editor commands.
type ApplicationState struct {
	HasOpenDocument       bool
	HasUnsavedChanges     bool
	IsOperationInProgress bool
	HasSelection          bool
	CanModifySelection    bool
	CurrentTool           ToolType
	CurrentDocumentPath   string

	defaultTool ToolType
	listeners   []stateListener
	nextId      int
}

type stateListener struct {
	id int
	fn func(*ApplicationState)
}

func NewApplicationState(defaultTool ToolType) *ApplicationState {
	s := &ApplicationState{defaultTool: defaultTool}
	s.Reset()
	return s
}

func (s *ApplicationState) Reset() {
	s.HasOpenDocument = false
	s.HasUnsavedChanges = false
	s.IsOperationInProgress = false
	s.HasSelection = false
	s.CanModifySelection = false
	s.CurrentTool = s.defaultTool
	s.CurrentDocumentPath = ""
	s.changed()
}

func (s *ApplicationState) DocumentOpened(path string) {
	s.HasOpenDocument = true
	s.HasUnsavedChanges = false
	s.CurrentDocumentPath = path
	s.changed()
}

// DocumentModified is ignored while no document is open.
func (s *ApplicationState) DocumentModified() {
	if s.HasOpenDocument {
		s.HasUnsavedChanges = true
	}
	s.changed()
}

func (s *ApplicationState) DocumentSaved(path string) {
	if s.HasOpenDocument {
		s.HasUnsavedChanges = false
		s.CurrentDocumentPath = path
	}
	s.changed()
}

func (s *ApplicationState) DocumentClosed() {
	s.Reset()
}

func (s *ApplicationState) OperationStarted() {
	s.IsOperationInProgress = true
	s.changed()
}

func (s *ApplicationState) OperationCompleted() {
	s.IsOperationInProgress = false
	s.changed()
}

func (s *ApplicationState) SelectionChanged(hasSelection, canModify bool) {
	s.HasSelection = hasSelection
	s.CanModifySelection = canModify && hasSelection
	s.changed()
}

func (s *ApplicationState) ToolSelected(tool ToolType) {
	s.CurrentTool = tool
	s.changed()
}

// OnChange registers fn to run after every state transition and returns a
// function that unregisters it.
func (s *ApplicationState) OnChange(fn func(*ApplicationState)) func() {
	s.nextId++
	id := s.nextId
	s.listeners = append(s.listeners, stateListener{id: id, fn: fn})
	return func() {
		s.listeners = slices.DeleteFunc(slices.Clone(s.listeners), func(l stateListener) bool {
			return l.id == id
		})
	}
}

func (s *ApplicationState) changed() {
	for _, l := range s.listeners {
		l.fn(s)
	}
}
