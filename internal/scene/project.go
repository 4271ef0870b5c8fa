package scene

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/saelir/scenepack/internal/errors"
)

// FileExt is the extension of saved project files.
const FileExt = ".scenepack.json"

// Project is the aggregate root of an animation pack under authoring.
// It exclusively owns its scenes; each scene owns its stages and graph.
type Project struct {
	// PackName is the display name, also used for output file naming
	PackName string `json:"pack_name"`

	// PackAuthor is the author display name
	PackAuthor string `json:"pack_author"`

	// PrefixHash is the namespace token embedded in generated event
	// names to avoid collisions with other packs. Assigned once at
	// creation and stable across saves.
	PrefixHash string `json:"prefix_hash"`

	// Scenes maps scene id to scene
	Scenes map[string]*Scene `json:"scenes"`
}

// NewProject creates an empty project with a freshly generated prefix hash.
// An empty author defaults to "Unknown".
func NewProject(author string) (*Project, error) {
	if author == "" {
		author = "Unknown"
	}
	hash, err := NewPrefixHash()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return &Project{
		PackAuthor: author,
		PrefixHash: hash,
		Scenes:     make(map[string]*Scene),
	}, nil
}

// SaveScene inserts or replaces a scene, keyed by its own id.
func (p *Project) SaveScene(s *Scene) {
	p.Scenes[s.ID] = s
}

// DiscardScene removes a scene and reports whether it existed.
func (p *Project) DiscardScene(id string) bool {
	if _, ok := p.Scenes[id]; !ok {
		return false
	}
	delete(p.Scenes, id)
	return true
}

// GetScene returns the scene with the given id, or nil.
func (p *Project) GetScene(id string) *Scene {
	return p.Scenes[id]
}

// GetStage searches all scenes for a stage with the given id.
func (p *Project) GetStage(id string) *Stage {
	for _, s := range p.Scenes {
		if stage := s.GetStage(id); stage != nil {
			return stage
		}
	}
	return nil
}

// SceneIDs returns all scene ids in sorted order. Compilation and listing
// iterate in this order so output is stable across runs.
func (p *Project) SceneIDs() []string {
	ids := make([]string, 0, len(p.Scenes))
	for id := range p.Scenes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Load reads a project file from disk.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFound(path)
		}
		return nil, errors.NewIOFailure(err)
	}

	p := &Project{}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, errors.NewMalformedDocument("project", path)
	}
	if p.Scenes == nil {
		p.Scenes = make(map[string]*Scene)
	}
	p.setNameFromPath(path)
	return p, nil
}

// Save writes the project to disk and derives the pack name from the
// file name stem.
func (p *Project) Save(path string) error {
	p.setNameFromPath(path)

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return errors.NewInternal(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.NewIOFailure(err)
	}
	return nil
}

// setNameFromPath sets the pack name to the file name with the project
// extension stripped. A name set this way round-trips through save/load.
func (p *Project) setNameFromPath(path string) {
	name := filepath.Base(path)
	if idx := strings.Index(name, FileExt); idx >= 0 {
		name = name[:idx]
	} else {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	p.PackName = name
}
