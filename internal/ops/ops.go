// Package ops implements the scenepack operations shared by the CLI and
// the MCP server. Each operation takes an input struct and returns an
// output struct plus a typed error.
package ops

import (
	"github.com/saelir/scenepack/internal/errors"
	"github.com/saelir/scenepack/internal/scene"
)

// loadProject validates the path argument and loads a project file.
func loadProject(path string) (*scene.Project, error) {
	if path == "" {
		return nil, errors.NewInvalidRequest("project path is required")
	}
	return scene.Load(path)
}
