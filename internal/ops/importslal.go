package ops

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/saelir/scenepack/internal/errors"
	"github.com/saelir/scenepack/internal/racekeys"
	"github.com/saelir/scenepack/internal/scene"
)

// ImportSLALInput contains parameters for the ImportSLAL operation.
type ImportSLALInput struct {
	Path     string // required
	SavePath string // optional; when set the reconstructed project is saved
	Author   string // optional pack author
}

// ImportSLALOutput contains the result of the ImportSLAL operation.
type ImportSLALOutput struct {
	PackName   string `json:"pack_name"`
	PrefixHash string `json:"prefix_hash"`
	Scenes     int    `json:"scenes"`
	SavePath   string `json:"save_path,omitempty"`
}

// slalDocument is the top level of a legacy SLAL pack description.
// Required fields are pointers so absence is distinguishable from a
// zero value and can be reported by name.
type slalDocument struct {
	Name       *string         `json:"name"`
	Animations []slalAnimation `json:"animations"`
}

type slalAnimation struct {
	Name         *string          `json:"name"`
	CreatureRace string           `json:"creature_race"`
	Actors       []slalActor      `json:"actors"`
	Tags         string           `json:"tags"`
	Stage        []slalStageExtra `json:"stage"`
}

type slalActor struct {
	Type   string         `json:"type"`
	Race   string         `json:"race"`
	Stages []slalStageRef `json:"stages"`
}

type slalStageRef struct {
	ID *string `json:"id"`
}

type slalStageExtra struct {
	Number *int    `json:"number"`
	Timer  float64 `json:"timer"`
}

// ImportSLAL reconstructs a project from a legacy SLAL pack document.
func ImportSLAL(input ImportSLALInput) (*ImportSLALOutput, error) {
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

	p, err := ReconstructSLAL(data, input.Author)
	if err != nil {
		return nil, err
	}

	out := &ImportSLALOutput{
		PackName:   p.PackName,
		PrefixHash: p.PrefixHash,
		Scenes:     len(p.Scenes),
	}
	if input.SavePath != "" {
		if err := p.Save(input.SavePath); err != nil {
			return nil, err
		}
		out.SavePath = input.SavePath
		out.PackName = p.PackName
	}
	return out, nil
}

// ReconstructSLAL builds a fresh project (with a newly generated prefix
// hash) from the raw bytes of a legacy document. Every animation becomes
// one scene with a strictly linear stage graph.
func ReconstructSLAL(data []byte, author string) (*scene.Project, error) {
	var doc slalDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewMalformedDocument("json", "document root")
	}
	if doc.Name == nil {
		return nil, errors.NewMalformedDocument("name", "document root")
	}
	if doc.Animations == nil {
		return nil, errors.NewMalformedDocument("animations", "document root")
	}

	p, err := scene.NewProject(author)
	if err != nil {
		return nil, err
	}
	p.PackName = *doc.Name

	for i := range doc.Animations {
		s, err := reconstructScene(&doc.Animations[i], i)
		if err != nil {
			return nil, err
		}
		p.SaveScene(s)
	}
	return p, nil
}

// reconstructScene converts one legacy animation entry. The first actor
// sizes the stage array; every actor must carry the same stage count.
func reconstructScene(anim *slalAnimation, index int) (*scene.Scene, error) {
	where := fmt.Sprintf("animation %d", index)
	if anim.Name == nil {
		return nil, errors.NewMalformedDocument("name", where)
	}
	where = fmt.Sprintf("animation %q", *anim.Name)
	if anim.Actors == nil {
		return nil, errors.NewMalformedDocument("actors", where)
	}

	s := scene.NewScene()
	s.Name = *anim.Name

	for n := range anim.Actors {
		actor := &anim.Actors[n]
		if len(actor.Stages) == 0 {
			return nil, errors.NewMalformedDocument("stages", fmt.Sprintf("actor %d of %s", n, where))
		}

		if len(s.Stages) == 0 {
			for range actor.Stages {
				stage := scene.NewStage()
				stage.Positions = make([]scene.Position, len(anim.Actors))
				s.Stages = append(s.Stages, stage)
			}
		} else if len(actor.Stages) != len(s.Stages) {
			return nil, errors.NewMalformedDocument("stages",
				fmt.Sprintf("actor %d of %s: %d stage events, expected %d",
					n, where, len(actor.Stages), len(s.Stages)))
		}

		sexCode := strings.ToLower(actor.Type)
		if sexCode == "" {
			sexCode = "male"
		}

		for i, evt := range actor.Stages {
			if evt.ID == nil {
				return nil, errors.NewMalformedDocument("id",
					fmt.Sprintf("stage %d of actor %d of %s", i, n, where))
			}
			pos := &s.Stages[i].Positions[n]
			pos.Events = []string{*evt.ID}

			switch sexCode {
			// "type" is a literal male synonym in legacy documents;
			// preserved as-is since its origin intent is unverifiable.
			case "male", "type":
				pos.Sex = scene.Sex{Male: true}
				pos.Race = "Human"
			case "female":
				pos.Sex = scene.Sex{Female: true}
				pos.Race = "Human"
			case "creaturemale", "creaturefemale":
				pos.Sex = scene.Sex{
					Male:   sexCode == "creaturemale",
					Female: sexCode == "creaturefemale",
				}
				raceCode := actor.Race
				if raceCode == "" {
					raceCode = anim.CreatureRace
				}
				race, err := racekeys.FromLegacy(raceCode)
				if err != nil {
					return nil, err
				}
				pos.Race = race
			default:
				return nil, errors.NewUnknownGender(sexCode)
			}
		}
	}

	if len(s.Stages) == 0 {
		return nil, errors.NewMalformedDocument("actors", where)
	}

	// Stage metadata: shared tag list, per-stage timer overrides, climax
	// flags on the final stage.
	tags := scene.ParseTags(anim.Tags)
	for i, stage := range s.Stages {
		stage.Tags = slices.Clone(tags)
		for _, extra := range anim.Stage {
			if extra.Number != nil && *extra.Number == i {
				stage.FixedLen = extra.Timer
			}
		}
	}
	last := s.Stages[len(s.Stages)-1]
	for i := range last.Positions {
		last.Positions[i].Climax = true
	}

	// Linear chain, built back to front: each node points at the stage
	// visited after it, the final stage gets no outgoing edge.
	s.Root = s.Stages[0].ID
	prev := ""
	for i := len(s.Stages) - 1; i >= 0; i-- {
		node := &scene.Node{}
		if prev != "" {
			node.Dest = []string{prev}
		}
		s.Graph[s.Stages[i].ID] = node
		prev = s.Stages[i].ID
	}

	return s, nil
}
