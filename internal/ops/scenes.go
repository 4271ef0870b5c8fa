package ops

// ScenesInput contains parameters for the Scenes operation.
type ScenesInput struct {
	ProjectPath string // required
}

// ScenesOutput contains the result of the Scenes operation.
type ScenesOutput struct {
	PackName   string      `json:"pack_name"`
	PrefixHash string      `json:"prefix_hash"`
	Scenes     []SceneItem `json:"scenes"`
}

// SceneItem summarizes one scene of a project.
type SceneItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Stages      int    `json:"stages"`
	Actors      int    `json:"actors"`
	HasWarnings bool   `json:"has_warnings"`
}

// Scenes lists the scenes of a project file in sorted-id order.
func Scenes(input ScenesInput) (*ScenesOutput, error) {
	p, err := loadProject(input.ProjectPath)
	if err != nil {
		return nil, err
	}

	out := &ScenesOutput{
		PackName:   p.PackName,
		PrefixHash: p.PrefixHash,
	}
	for _, id := range p.SceneIDs() {
		s := p.Scenes[id]
		item := SceneItem{
			ID:          s.ID,
			Name:        s.Name,
			Stages:      len(s.Stages),
			HasWarnings: s.HasWarnings,
		}
		if len(s.Stages) > 0 {
			item.Actors = len(s.Stages[0].Positions)
		}
		out.Scenes = append(out.Scenes, item)
	}
	return out, nil
}
