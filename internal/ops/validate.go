package ops

import (
	"github.com/saelir/scenepack/internal/scene"
)

// ValidateInput contains parameters for the Validate operation.
type ValidateInput struct {
	ProjectPath string // required
	Update      bool   // rewrite per-scene warning flags and save
}

// ValidateOutput contains the result of the Validate operation.
type ValidateOutput struct {
	Scenes   int                     `json:"scenes"`
	Valid    int                     `json:"valid"`
	Problems []*scene.ValidateResult `json:"problems,omitempty"`
}

// Validate checks every scene of a project for uncompilable states. With
// Update set, each scene's warning flag is replaced by the validation
// verdict and the project is saved back, so the next compile skips
// exactly the scenes reported here.
func Validate(input ValidateInput) (*ValidateOutput, error) {
	p, err := loadProject(input.ProjectPath)
	if err != nil {
		return nil, err
	}

	out := &ValidateOutput{}
	for _, id := range p.SceneIDs() {
		s := p.Scenes[id]
		out.Scenes++

		result := scene.Validate(s)
		if result.Valid {
			out.Valid++
		} else {
			out.Problems = append(out.Problems, result)
		}
		if input.Update {
			s.HasWarnings = !result.Valid
		}
	}

	if input.Update {
		if err := p.Save(input.ProjectPath); err != nil {
			return nil, err
		}
	}
	return out, nil
}
