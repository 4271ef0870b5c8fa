package ops

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/saelir/scenepack/internal/config"
	"github.com/saelir/scenepack/internal/errors"
	"github.com/saelir/scenepack/internal/fnis"
	"github.com/saelir/scenepack/internal/racekeys"
	"github.com/saelir/scenepack/internal/scene"
)

// Output locations relative to the output root. The registry directory and
// extension are dictated by the game runtime; the mesh tree by the
// animation installer.
const (
	registrySubdir = "SKSE/SexLab/Registry"
	registryExt    = ".slr"
	meshSubdir     = "meshes/actors"
)

// Control set sentinels. Pre-seeding these placeholder event ids keeps
// editor templates out of the generated lists.
const (
	sentinelBlank   = "__BLANK__"
	sentinelDefault = "__DEFAULT__"
)

// CompileInput contains parameters for the Compile operation.
type CompileInput struct {
	ProjectPath string // required
	OutputRoot  string // required unless configured
	BlankPrefix *bool  // optional override of cfg.BlankPrefixLines
}

// CompileOutput contains the result of the Compile operation.
type CompileOutput struct {
	RegistryPath  string   `json:"registry_path"`
	ListFiles     []string `json:"list_files"`
	Scenes        int      `json:"scenes"`
	SkippedScenes int      `json:"skipped_scenes"`
	Events        int      `json:"events"`
}

// Compile loads a project file and compiles it into the binary registry
// and the per-race list files.
func Compile(cfg *config.Config, input CompileInput) (*CompileOutput, error) {
	p, err := loadProject(input.ProjectPath)
	if err != nil {
		return nil, err
	}

	outputRoot := input.OutputRoot
	if outputRoot == "" {
		outputRoot = cfg.OutputRoot
	}
	if outputRoot == "" {
		return nil, errors.NewInvalidRequest("output root is required")
	}

	blankPrefix := cfg.BlankPrefixLines
	if input.BlankPrefix != nil {
		blankPrefix = *input.BlankPrefix
	}

	return CompileProject(p, outputRoot, blankPrefix)
}

// CompileProject compiles an in-memory project. The registry is written
// first; any failure afterwards aborts the compilation and may leave a
// subset of list files behind, which the next successful compile replaces
// wholesale.
func CompileProject(p *scene.Project, outputRoot string, blankPrefix bool) (*CompileOutput, error) {
	out := &CompileOutput{}

	// Registry binary. Encoding front-loads every invariant check, so a
	// broken scene aborts before any file is touched.
	buf, err := scene.Encode(p)
	if err != nil {
		return nil, err
	}

	registryDir := filepath.Join(outputRoot, filepath.FromSlash(registrySubdir))
	if err := os.MkdirAll(registryDir, 0o755); err != nil {
		return nil, errors.NewIOFailure(err)
	}
	registryName := p.PackName
	if registryName == "" {
		registryName = p.PrefixHash
	}
	registryPath := filepath.Join(registryDir, registryName+registryExt)
	if err := os.WriteFile(registryPath, buf, 0o644); err != nil {
		return nil, errors.NewIOFailure(err)
	}
	out.RegistryPath = registryPath

	// Generate lines grouped by race key. The control set guarantees each
	// distinct first event expands exactly once, however many positions
	// reference it.
	groups := make(map[string][]string)
	control := map[string]bool{sentinelBlank: true, sentinelDefault: true}

	for _, id := range p.SceneIDs() {
		s := p.Scenes[id]
		if s.HasWarnings {
			out.SkippedScenes++
			continue
		}
		out.Scenes++
		for _, stage := range s.Stages {
			for i := range stage.Positions {
				pos := &stage.Positions[i]
				event := pos.Events[0]
				if control[event] {
					continue
				}
				control[event] = true

				objects := fnis.SplitObjects(pos.AnimObj)
				fixedLen := stage.FixedLen > 0
				var lines []string
				if blankPrefix {
					lines = fnis.Lines(pos.Events, "", fixedLen, objects)
				}
				lines = append(lines, fnis.Lines(pos.Events, p.PrefixHash, fixedLen, objects)...)

				for _, key := range racekeys.AliasGroup(pos.Race) {
					groups[key] = append(groups[key], lines...)
				}
			}
		}
	}
	out.Events = len(control) - 2

	// Write one list file per race group, in sorted order for stable runs.
	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		folder, err := racekeys.FolderFor(key)
		if err != nil {
			return nil, err
		}
		dir := filepath.Join(outputRoot, filepath.FromSlash(meshSubdir),
			filepath.FromSlash(folder), "animations", p.PackName)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.NewIOFailure(err)
		}

		path := filepath.Join(dir, listFileName(p.PackName, folder, key))
		content := strings.Join(groups[key], "\n") + "\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return nil, errors.NewIOFailure(err)
		}
		out.ListFiles = append(out.ListFiles, path)
	}

	return out, nil
}

// listFileName derives the list file name from the folder and race key.
// The shared canine folder holds three differently suffixed lists, one per
// family member; the character folder takes the plain name; every other
// folder is suffixed with its final segment.
func listFileName(packName, folder, raceKey string) string {
	segment := racekeys.FolderSegment(folder)
	switch segment {
	case "character":
		return "FNIS_" + packName + "_List.txt"
	case "canine":
		switch raceKey {
		case "Canine":
			return "FNIS_" + packName + "_canine_List.txt"
		case "Dog":
			return "FNIS_" + packName + "_dog_List.txt"
		default:
			return "FNIS_" + packName + "_wolf_List.txt"
		}
	default:
		return "FNIS_" + packName + "_" + segment + "_List.txt"
	}
}
