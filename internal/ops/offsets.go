package ops

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/saelir/scenepack/internal/errors"
	"github.com/saelir/scenepack/internal/scene"
)

// ApplyOffsetsInput contains parameters for the ApplyOffsets operation.
type ApplyOffsetsInput struct {
	ProjectPath string // required
	OffsetsPath string // required
}

// ApplyOffsetsOutput contains the result of the ApplyOffsets operation.
type ApplyOffsetsOutput struct {
	ScenesUpdated int `json:"scenes_updated"`
	StagesUpdated int `json:"stages_updated"`
	SkippedScenes int `json:"skipped_scenes"`
}

// offsetDocument maps scene id to stage id to ordered per-position
// offsets. Scene ids absent from the project are skipped, not errors,
// so one offset file can serve several packs.
type offsetDocument map[string]map[string][]scene.Offset

// ApplyOffsets overwrites position offsets from an offset-override
// document and saves the project back in place.
func ApplyOffsets(input ApplyOffsetsInput) (*ApplyOffsetsOutput, error) {
	p, err := loadProject(input.ProjectPath)
	if err != nil {
		return nil, err
	}
	if input.OffsetsPath == "" {
		return nil, errors.NewInvalidRequest("offsets path is required")
	}

	data, err := os.ReadFile(input.OffsetsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFound(input.OffsetsPath)
		}
		return nil, errors.NewIOFailure(err)
	}

	var doc offsetDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewMalformedDocument("offsets", input.OffsetsPath)
	}

	out := &ApplyOffsetsOutput{}
	for sceneID, stages := range doc {
		s := p.GetScene(sceneID)
		if s == nil {
			out.SkippedScenes++
			continue
		}
		for stageID, offsets := range stages {
			if err := s.ApplyOffsetOverride(stageID, offsets); err != nil {
				return nil, err
			}
			out.StagesUpdated++
		}
		out.ScenesUpdated++
	}

	if err := p.Save(input.ProjectPath); err != nil {
		return nil, err
	}
	return out, nil
}
