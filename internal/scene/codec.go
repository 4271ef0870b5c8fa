package scene

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/saelir/scenepack/internal/errors"
)

// RegistryVersion is the binary registry format version. Registries are
// not forward or backward compatible across versions.
const RegistryVersion = 3

// Encoder is implemented by every entity written to the binary registry.
// ByteSize returns the exact number of bytes Append will add, so a caller
// can pre-allocate one buffer for a whole project and avoid reallocation.
//
// Wire conventions: integers are big-endian; variable-length strings carry
// a u64 length prefix; prefix hash and entity ids are fixed-length raw
// bytes; float fields are quantized (×1000, rounded, i32).
type Encoder interface {
	ByteSize() int
	Append(dst []byte) ([]byte, error)
}

// Encode serializes an entity into a single pre-sized buffer.
func Encode(e Encoder) ([]byte, error) {
	buf := make([]byte, 0, e.ByteSize())
	return e.Append(buf)
}

const (
	u64Size       = 8
	quantizedSize = 4
)

func stringSize(s string) int {
	return u64Size + len(s)
}

func appendU64(dst []byte, v uint64) []byte {
	return binary.BigEndian.AppendUint64(dst, v)
}

func appendString(dst []byte, s string) []byte {
	dst = appendU64(dst, uint64(len(s)))
	return append(dst, s...)
}

// appendQuantized stores a float as a big-endian signed 32-bit integer in
// thousandths, matching the runtime's fixed-point representation.
func appendQuantized(dst []byte, f float64) []byte {
	q := int32(math.Round(f * 1000.0))
	return binary.BigEndian.AppendUint32(dst, uint32(q))
}

// ByteSize implements Encoder. Warned scenes are excluded.
func (p *Project) ByteSize() int {
	size := 1 + // version
		stringSize(p.PackName) +
		stringSize(p.PackAuthor) +
		PrefixHashLen +
		u64Size // scene count
	for _, s := range p.Scenes {
		if s.HasWarnings {
			continue
		}
		size += s.ByteSize()
	}
	return size
}

// Append implements Encoder. Scenes are written in sorted-id order so a
// project compiles to identical bytes on every run. A non-warned scene
// with no stages is a fatal invariant violation, not a skip.
func (p *Project) Append(dst []byte) ([]byte, error) {
	if len(p.PrefixHash) != PrefixHashLen {
		return nil, errors.NewEncodingInvariant(
			fmt.Sprintf("prefix hash %q is not %d characters", p.PrefixHash, PrefixHashLen))
	}

	dst = append(dst, RegistryVersion)
	dst = appendString(dst, p.PackName)
	dst = appendString(dst, p.PackAuthor)
	dst = append(dst, p.PrefixHash...)

	written := uint64(0)
	for _, s := range p.Scenes {
		if !s.HasWarnings {
			written++
		}
	}
	dst = appendU64(dst, written)

	var err error
	for _, id := range p.SceneIDs() {
		s := p.Scenes[id]
		if s.HasWarnings {
			continue
		}
		if dst, err = s.Append(dst); err != nil {
			return nil, err
		}
	}
	return dst, nil
}

// ByteSize implements Encoder.
func (s *Scene) ByteSize() int {
	size := IDLen + // id
		stringSize(s.Name) +
		u64Size // stage count
	for _, stage := range s.Stages {
		size += stage.ByteSize()
	}
	size += IDLen // root
	for _, stage := range s.Stages {
		size += u64Size // edge count
		if node := s.Graph[stage.ID]; node != nil {
			size += len(node.Dest) * IDLen
		}
	}
	return size
}

// Append implements Encoder. Graph nodes follow the stage records in stage
// order; a stage absent from the graph map writes a terminal node.
func (s *Scene) Append(dst []byte) ([]byte, error) {
	if len(s.Stages) == 0 {
		return nil, errors.NewEncodingInvariant(
			fmt.Sprintf("scene %s (%s) has no stages", s.ID, s.Name))
	}
	if err := checkIDLen(s.ID, "scene"); err != nil {
		return nil, err
	}
	if err := checkIDLen(s.Root, "scene root"); err != nil {
		return nil, err
	}

	dst = append(dst, s.ID...)
	dst = appendString(dst, s.Name)
	dst = appendU64(dst, uint64(len(s.Stages)))

	var err error
	for _, stage := range s.Stages {
		if dst, err = stage.Append(dst); err != nil {
			return nil, err
		}
	}

	dst = append(dst, s.Root...)
	for _, stage := range s.Stages {
		node := s.Graph[stage.ID]
		if node == nil {
			dst = appendU64(dst, 0)
			continue
		}
		dst = appendU64(dst, uint64(len(node.Dest)))
		for _, dest := range node.Dest {
			if err := checkIDLen(dest, "graph edge"); err != nil {
				return nil, err
			}
			dst = append(dst, dest...)
		}
	}
	return dst, nil
}

// ByteSize implements Encoder.
func (s *Stage) ByteSize() int {
	size := IDLen + u64Size // id, position count
	for i := range s.Positions {
		size += s.Positions[i].ByteSize()
	}
	size += quantizedSize // fixed length
	size += u64Size       // tag count
	for _, tag := range s.Tags {
		size += stringSize(tag)
	}
	return size
}

// Append implements Encoder.
func (s *Stage) Append(dst []byte) ([]byte, error) {
	if err := checkIDLen(s.ID, "stage"); err != nil {
		return nil, err
	}

	dst = append(dst, s.ID...)
	dst = appendU64(dst, uint64(len(s.Positions)))

	var err error
	for i := range s.Positions {
		if dst, err = s.Positions[i].Append(dst); err != nil {
			return nil, err
		}
	}

	dst = appendQuantized(dst, s.FixedLen)
	dst = appendU64(dst, uint64(len(s.Tags)))
	for _, tag := range s.Tags {
		dst = appendString(dst, tag)
	}
	return dst, nil
}

// Sex flag bits in the position record.
const (
	sexMale   = 1 << 0
	sexFemale = 1 << 1
	sexFuta   = 1 << 2
)

// ByteSize implements Encoder.
func (p *Position) ByteSize() int {
	size := u64Size // event count
	for _, ev := range p.Events {
		size += stringSize(ev)
	}
	size += 1 // sex flags
	size += stringSize(p.Race)
	size += stringSize(p.AnimObj)
	size += 1                 // climax
	size += 4 * quantizedSize // offset
	return size
}

// Append implements Encoder. An empty event chain cannot be encoded: the
// first event is the animation handle the runtime resolves.
func (p *Position) Append(dst []byte) ([]byte, error) {
	if len(p.Events) == 0 {
		return nil, errors.NewEncodingInvariant("position has no animation events")
	}

	dst = appendU64(dst, uint64(len(p.Events)))
	for _, ev := range p.Events {
		dst = appendString(dst, ev)
	}

	var sex byte
	if p.Sex.Male {
		sex |= sexMale
	}
	if p.Sex.Female {
		sex |= sexFemale
	}
	if p.Sex.Futa {
		sex |= sexFuta
	}
	dst = append(dst, sex)

	dst = appendString(dst, p.Race)
	dst = appendString(dst, p.AnimObj)

	var climax byte
	if p.Climax {
		climax = 1
	}
	dst = append(dst, climax)

	dst = appendQuantized(dst, p.Offset.X)
	dst = appendQuantized(dst, p.Offset.Y)
	dst = appendQuantized(dst, p.Offset.Z)
	dst = appendQuantized(dst, p.Offset.R)
	return dst, nil
}

func checkIDLen(id, what string) error {
	if len(id) != IDLen {
		return errors.NewEncodingInvariant(
			fmt.Sprintf("%s id %q is not %d characters", what, id, IDLen))
	}
	return nil
}
