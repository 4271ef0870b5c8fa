package scene

import (
	"github.com/saelir/scenepack/internal/errors"
)

// Node is a stage-graph edge record. Dest is ordered; it is empty for
// terminal stages and holds multiple ids for branching scenes.
type Node struct {
	Dest []string `json:"dest"`
}

// Scene is one complete authored animation sequence.
type Scene struct {
	// ID uniquely identifies this scene within the project
	ID string `json:"id"`

	// Name is the display name
	Name string `json:"name"`

	// Stages is the ordered stage sequence
	Stages []*Stage `json:"stages"`

	// Root is the id of the stage traversal starts from
	Root string `json:"root"`

	// Graph maps stage id to its outgoing edges
	Graph map[string]*Node `json:"graph"`

	// HasWarnings excludes the scene from compiled output entirely
	HasWarnings bool `json:"has_warnings"`
}

// NewScene creates an empty scene with a fresh ID.
func NewScene() *Scene {
	return &Scene{
		ID:    NewID(),
		Graph: make(map[string]*Node),
	}
}

// GetStage returns the stage with the given id, or nil.
func (s *Scene) GetStage(id string) *Stage {
	for _, stage := range s.Stages {
		if stage.ID == id {
			return stage
		}
	}
	return nil
}

// ApplyOffsetOverride replaces position offsets of one stage. Offsets are
// matched to positions by index; surplus entries are an error, missing
// trailing entries leave the remaining positions untouched.
func (s *Scene) ApplyOffsetOverride(stageID string, offsets []Offset) error {
	stage := s.GetStage(stageID)
	if stage == nil {
		return errors.NewNotFound("stage " + stageID)
	}
	if len(offsets) > len(stage.Positions) {
		return errors.NewInvalidRequest("more offsets than positions for stage " + stageID)
	}
	for i, off := range offsets {
		stage.Positions[i].Offset = off
	}
	return nil
}
