package ops

import (
	"strings"

	"github.com/saelir/scenepack/internal/config"
	"github.com/saelir/scenepack/internal/errors"
	"github.com/saelir/scenepack/internal/scene"
)

// CreateInput contains parameters for the Create operation.
type CreateInput struct {
	Path   string // required; project file extension is appended if absent
	Author string // optional; falls back to cfg.DefaultAuthor
}

// CreateOutput contains the result of the Create operation.
type CreateOutput struct {
	Path       string `json:"path"`
	PackName   string `json:"pack_name"`
	PackAuthor string `json:"pack_author"`
	PrefixHash string `json:"prefix_hash"`
}

// Create writes a fresh empty project file with a generated prefix hash.
func Create(cfg *config.Config, input CreateInput) (*CreateOutput, error) {
	if input.Path == "" {
		return nil, errors.NewInvalidRequest("path is required")
	}
	path := input.Path
	if !strings.HasSuffix(path, scene.FileExt) {
		path += scene.FileExt
	}

	author := input.Author
	if author == "" {
		author = cfg.DefaultAuthor
	}

	p, err := scene.NewProject(author)
	if err != nil {
		return nil, err
	}
	if err := p.Save(path); err != nil {
		return nil, err
	}

	return &CreateOutput{
		Path:       path,
		PackName:   p.PackName,
		PackAuthor: p.PackAuthor,
		PrefixHash: p.PrefixHash,
	}, nil
}
