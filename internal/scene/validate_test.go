package scene

import (
	"strings"
	"testing"
)

func TestValidate_CleanScene(t *testing.T) {
	s := testScene(3, 2)

	result := Validate(s)
	if !result.Valid {
		t.Fatalf("Validate() = invalid, problems: %v", result.Problems)
	}
	if result.SceneID != s.ID || result.SceneName != s.Name {
		t.Errorf("result identity = %q/%q, want %q/%q", result.SceneID, result.SceneName, s.ID, s.Name)
	}
}

func TestValidate_NoStages(t *testing.T) {
	s := NewScene()
	s.Name = "Empty"

	result := Validate(s)
	if result.Valid {
		t.Fatal("Validate() = valid for stageless scene")
	}
	wantProblem(t, result, "no stages")
}

func TestValidate_BadRoot(t *testing.T) {
	s := testScene(2, 1)
	s.Root = NewID()

	result := Validate(s)
	if result.Valid {
		t.Fatal("Validate() = valid with dangling root")
	}
	wantProblem(t, result, "root")
}

func TestValidate_PositionCountMismatch(t *testing.T) {
	s := testScene(2, 2)
	s.Stages[1].Positions = s.Stages[1].Positions[:1]

	result := Validate(s)
	if result.Valid {
		t.Fatal("Validate() = valid with mismatched position counts")
	}
	wantProblem(t, result, "expected 2")
}

func TestValidate_EmptyEvents(t *testing.T) {
	s := testScene(1, 1)
	s.Stages[0].Positions[0].Events = nil

	result := Validate(s)
	if result.Valid {
		t.Fatal("Validate() = valid with eventless position")
	}
	wantProblem(t, result, "no animation events")
}

func TestValidate_UnknownRaceKey(t *testing.T) {
	s := testScene(1, 1)
	s.Stages[0].Positions[0].Race = "Mantis"

	result := Validate(s)
	if result.Valid {
		t.Fatal("Validate() = valid with unknown race key")
	}
	wantProblem(t, result, "Mantis")
}

func TestValidate_DanglingGraphEdge(t *testing.T) {
	s := testScene(2, 1)
	s.Graph[s.Stages[0].ID].Dest = []string{NewID()}

	result := Validate(s)
	if result.Valid {
		t.Fatal("Validate() = valid with dangling graph edge")
	}
	wantProblem(t, result, "unknown stage")
}

func TestValidate_OrphanGraphNode(t *testing.T) {
	s := testScene(1, 1)
	s.Graph[NewID()] = &Node{}

	result := Validate(s)
	if result.Valid {
		t.Fatal("Validate() = valid with orphan graph node")
	}
	wantProblem(t, result, "not a stage")
}

func wantProblem(t *testing.T, result *ValidateResult, substr string) {
	t.Helper()
	for _, p := range result.Problems {
		if strings.Contains(p, substr) {
			return
		}
	}
	t.Errorf("no problem mentioning %q in %v", substr, result.Problems)
}
