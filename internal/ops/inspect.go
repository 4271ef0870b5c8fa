package ops

import (
	"os"

	"github.com/saelir/scenepack/internal/errors"
	"github.com/saelir/scenepack/internal/scene"
)

// InspectInput contains parameters for the Inspect operation.
type InspectInput struct {
	Path string // required; a compiled registry file
}

// InspectOutput contains the result of the Inspect operation.
type InspectOutput struct {
	Version    int                  `json:"version"`
	PackName   string               `json:"pack_name"`
	PackAuthor string               `json:"pack_author"`
	PrefixHash string               `json:"prefix_hash"`
	Scenes     []InspectSceneRecord `json:"scenes"`
}

// InspectSceneRecord summarizes one scene of a decoded registry.
type InspectSceneRecord struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Stages int    `json:"stages"`
	Actors int    `json:"actors"`
	Events int    `json:"events"`
}

// Inspect decodes a compiled registry file and reports its contents.
func Inspect(input InspectInput) (*InspectOutput, error) {
	if input.Path == "" {
		return nil, errors.NewInvalidRequest("path is required")
	}
	data, err := os.ReadFile(input.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFound(input.Path)
		}
		return nil, errors.NewIOFailure(err)
	}

	p, err := scene.DecodeRegistry(data)
	if err != nil {
		return nil, err
	}

	out := &InspectOutput{
		Version:    scene.RegistryVersion,
		PackName:   p.PackName,
		PackAuthor: p.PackAuthor,
		PrefixHash: p.PrefixHash,
	}
	for _, id := range p.SceneIDs() {
		s := p.Scenes[id]
		record := InspectSceneRecord{
			ID:     s.ID,
			Name:   s.Name,
			Stages: len(s.Stages),
		}
		if len(s.Stages) > 0 {
			record.Actors = len(s.Stages[0].Positions)
		}
		for _, stage := range s.Stages {
			for _, pos := range stage.Positions {
				record.Events += len(pos.Events)
			}
		}
		out.Scenes = append(out.Scenes, record)
	}
	return out, nil
}
