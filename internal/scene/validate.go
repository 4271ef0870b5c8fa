package scene

import (
	"fmt"

	"github.com/saelir/scenepack/internal/racekeys"
)

// ValidateResult contains validation findings for one scene.
type ValidateResult struct {
	SceneID   string   `json:"scene_id"`
	SceneName string   `json:"scene_name"`
	Valid     bool     `json:"valid"`
	Problems  []string `json:"problems,omitempty"`
}

// Validate checks a scene for states that would make it uncompilable:
// an empty stage list, positions without events, race keys with no output
// folder, and graph edges or roots that reference unknown stages. The
// findings feed the scene's warning flag, which in turn excludes it from
// compiled output.
func Validate(s *Scene) *ValidateResult {
	result := &ValidateResult{
		SceneID:   s.ID,
		SceneName: s.Name,
	}

	if len(s.Stages) == 0 {
		result.Problems = append(result.Problems, "scene has no stages")
	} else if s.GetStage(s.Root) == nil {
		result.Problems = append(result.Problems, fmt.Sprintf("root %q is not a stage of this scene", s.Root))
	}

	actors := -1
	for i, stage := range s.Stages {
		if len(stage.Positions) == 0 {
			result.Problems = append(result.Problems, fmt.Sprintf("stage %d has no positions", i))
			continue
		}
		if actors == -1 {
			actors = len(stage.Positions)
		} else if len(stage.Positions) != actors {
			result.Problems = append(result.Problems,
				fmt.Sprintf("stage %d has %d positions, expected %d", i, len(stage.Positions), actors))
		}
		for j, pos := range stage.Positions {
			if len(pos.Events) == 0 {
				result.Problems = append(result.Problems,
					fmt.Sprintf("stage %d position %d has no animation events", i, j))
			}
			if !racekeys.IsKnown(pos.Race) {
				result.Problems = append(result.Problems,
					fmt.Sprintf("stage %d position %d has unknown race key %q", i, j, pos.Race))
			}
		}
	}

	for stageID, node := range s.Graph {
		if s.GetStage(stageID) == nil {
			result.Problems = append(result.Problems, fmt.Sprintf("graph node %q is not a stage of this scene", stageID))
			continue
		}
		if node == nil {
			continue
		}
		for _, dest := range node.Dest {
			if s.GetStage(dest) == nil {
				result.Problems = append(result.Problems,
					fmt.Sprintf("graph edge %s -> %s points at an unknown stage", stageID, dest))
			}
		}
	}

	result.Valid = len(result.Problems) == 0
	return result
}
