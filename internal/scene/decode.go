package scene

import (
	"encoding/binary"
	"fmt"

	"github.com/saelir/scenepack/internal/errors"
)

// DecodeRegistry reads a compiled binary registry back into a Project.
// Warned scenes never reach the registry, so every decoded scene has
// HasWarnings false. Quantized floats come back in thousandth precision.
func DecodeRegistry(data []byte) (*Project, error) {
	r := &reader{data: data}

	version, err := r.u8("version")
	if err != nil {
		return nil, err
	}
	if version != RegistryVersion {
		return nil, errors.NewEncodingInvariant(
			fmt.Sprintf("unsupported registry version %d (want %d)", version, RegistryVersion))
	}

	p := &Project{Scenes: make(map[string]*Scene)}
	if p.PackName, err = r.str("pack name"); err != nil {
		return nil, err
	}
	if p.PackAuthor, err = r.str("pack author"); err != nil {
		return nil, err
	}
	if p.PrefixHash, err = r.raw(PrefixHashLen, "prefix hash"); err != nil {
		return nil, err
	}

	count, err := r.u64("scene count")
	if err != nil {
		return nil, err
	}
	for i := uint64(0); i < count; i++ {
		s, err := decodeScene(r)
		if err != nil {
			return nil, err
		}
		p.Scenes[s.ID] = s
	}

	if r.pos != len(r.data) {
		return nil, errors.NewEncodingInvariant(
			fmt.Sprintf("%d trailing bytes after last scene", len(r.data)-r.pos))
	}
	return p, nil
}

func decodeScene(r *reader) (*Scene, error) {
	s := &Scene{Graph: make(map[string]*Node)}

	var err error
	if s.ID, err = r.raw(IDLen, "scene id"); err != nil {
		return nil, err
	}
	if s.Name, err = r.str("scene name"); err != nil {
		return nil, err
	}

	stageCount, err := r.u64("stage count")
	if err != nil {
		return nil, err
	}
	for i := uint64(0); i < stageCount; i++ {
		stage, err := decodeStage(r)
		if err != nil {
			return nil, err
		}
		s.Stages = append(s.Stages, stage)
	}

	if s.Root, err = r.raw(IDLen, "scene root"); err != nil {
		return nil, err
	}
	for _, stage := range s.Stages {
		edgeCount, err := r.u64("edge count")
		if err != nil {
			return nil, err
		}
		node := &Node{}
		for i := uint64(0); i < edgeCount; i++ {
			dest, err := r.raw(IDLen, "graph edge")
			if err != nil {
				return nil, err
			}
			node.Dest = append(node.Dest, dest)
		}
		s.Graph[stage.ID] = node
	}
	return s, nil
}

func decodeStage(r *reader) (*Stage, error) {
	s := &Stage{}

	var err error
	if s.ID, err = r.raw(IDLen, "stage id"); err != nil {
		return nil, err
	}

	posCount, err := r.u64("position count")
	if err != nil {
		return nil, err
	}
	for i := uint64(0); i < posCount; i++ {
		pos, err := decodePosition(r)
		if err != nil {
			return nil, err
		}
		s.Positions = append(s.Positions, *pos)
	}

	if s.FixedLen, err = r.quantized("fixed length"); err != nil {
		return nil, err
	}

	tagCount, err := r.u64("tag count")
	if err != nil {
		return nil, err
	}
	for i := uint64(0); i < tagCount; i++ {
		tag, err := r.str("tag")
		if err != nil {
			return nil, err
		}
		s.Tags = append(s.Tags, tag)
	}
	return s, nil
}

func decodePosition(r *reader) (*Position, error) {
	p := &Position{}

	eventCount, err := r.u64("event count")
	if err != nil {
		return nil, err
	}
	for i := uint64(0); i < eventCount; i++ {
		ev, err := r.str("event")
		if err != nil {
			return nil, err
		}
		p.Events = append(p.Events, ev)
	}

	sex, err := r.u8("sex flags")
	if err != nil {
		return nil, err
	}
	p.Sex = Sex{
		Male:   sex&sexMale != 0,
		Female: sex&sexFemale != 0,
		Futa:   sex&sexFuta != 0,
	}

	if p.Race, err = r.str("race"); err != nil {
		return nil, err
	}
	if p.AnimObj, err = r.str("anim objects"); err != nil {
		return nil, err
	}

	climax, err := r.u8("climax")
	if err != nil {
		return nil, err
	}
	p.Climax = climax != 0

	if p.Offset.X, err = r.quantized("offset x"); err != nil {
		return nil, err
	}
	if p.Offset.Y, err = r.quantized("offset y"); err != nil {
		return nil, err
	}
	if p.Offset.Z, err = r.quantized("offset z"); err != nil {
		return nil, err
	}
	if p.Offset.R, err = r.quantized("offset r"); err != nil {
		return nil, err
	}
	return p, nil
}

// reader is a cursor over a registry buffer. Every read names the field it
// was after so truncation errors point at the broken record.
type reader struct {
	data []byte
	pos  int
}

func (r *reader) take(n int, what string) ([]byte, error) {
	if r.pos+n > len(r.data) {
		return nil, errors.NewEncodingInvariant(
			fmt.Sprintf("registry truncated reading %s at offset %d", what, r.pos))
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *reader) u8(what string) (byte, error) {
	b, err := r.take(1, what)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) u64(what string) (uint64, error) {
	b, err := r.take(u64Size, what)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

func (r *reader) raw(n int, what string) (string, error) {
	b, err := r.take(n, what)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *reader) str(what string) (string, error) {
	n, err := r.u64(what + " length")
	if err != nil {
		return "", err
	}
	if n > uint64(len(r.data)-r.pos) {
		return "", errors.NewEncodingInvariant(
			fmt.Sprintf("registry truncated reading %s at offset %d", what, r.pos))
	}
	return r.raw(int(n), what)
}

func (r *reader) quantized(what string) (float64, error) {
	b, err := r.take(quantizedSize, what)
	if err != nil {
		return 0, err
	}
	q := int32(binary.BigEndian.Uint32(b))
	return float64(q) / 1000.0, nil
}
