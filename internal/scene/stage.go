package scene

// Sex holds the gender flags of a position. The flags are independent at
// the type level; legacy import always sets exactly one of Male/Female.
type Sex struct {
	Male   bool `json:"male"`
	Female bool `json:"female"`
	Futa   bool `json:"futa"`
}

// Offset is a per-position placement adjustment. Values are quantized to
// millimeter/milli-degree precision when written to the binary registry.
type Offset struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	R float64 `json:"r"`
}

// Position is one actor's per-stage animation assignment.
type Position struct {
	// Events is the ordered animation event chain. At least one event is
	// required; more than one describes a chained multi-part animation.
	Events []string `json:"event"`

	// Sex holds the actor gender flags
	Sex Sex `json:"sex"`

	// Race is the canonical race key routing generated lines to an
	// output folder
	Race string `json:"race"`

	// AnimObj is a comma-separated companion object list
	AnimObj string `json:"anim_obj"`

	// Climax is set only on positions in the last stage of a scene
	Climax bool `json:"climax"`

	// Offset is the placement adjustment for this position
	Offset Offset `json:"offset"`
}

// Stage is one pose shared synchronously across all participating actors.
type Stage struct {
	// ID uniquely identifies this stage within its scene graph
	ID string `json:"id"`

	// Positions holds one entry per actor, index-aligned across all
	// stages of the owning scene
	Positions []Position `json:"positions"`

	// Tags is a free-form lowercase tag list
	Tags []string `json:"tags"`

	// FixedLen is the fixed stage duration; zero means variable length
	FixedLen float64 `json:"fixed_len"`
}

// NewStage creates an empty stage with a fresh ID.
func NewStage() *Stage {
	return &Stage{ID: NewID()}
}
