package meshedit

import (
	"fmt"
	"reflect"

	"github.com/gekko3d/meshedit/scene"
)

type Module interface {
	Install(app *App, cmd *Commands)
}

type App struct {
	modules   []Module
	resources map[reflect.Type]any
}

func (app *App) Commands() *Commands {
	return &Commands{
		app: app,
	}
}

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if resourceType.Kind() != reflect.Pointer {
			panic(fmt.Sprintf("%s is not a pointer resource", resourceType))
		}
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}

		app.resources[resourceType.Elem()] = resource
	}
	return app
}

// Resource returns the *T resource installed in app, if any.
func Resource[T any](app *App) (*T, bool) {
	if app == nil {
		return nil, false
	}
	r, ok := app.resources[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return nil, false
	}
	return r.(*T), true
}

// Scene returns the installed scene, or nil before HierarchyModule ran.
func (app *App) Scene() *scene.Scene {
	s, _ := Resource[scene.Scene](app)
	return s
}

func (app *App) Selection() *Selection {
	s, _ := Resource[Selection](app)
	return s
}

func (app *App) State() *ApplicationState {
	s, _ := Resource[ApplicationState](app)
	return s
}
