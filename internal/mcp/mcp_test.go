package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/saelir/scenepack/internal/config"
	"github.com/saelir/scenepack/internal/errors"
	"github.com/saelir/scenepack/internal/scene"
)

// makeRequest creates a CallToolRequest with the given arguments.
func makeRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

// buildProject writes a compilable one-scene project and returns its path.
func buildProject(t *testing.T, name string) string {
	t.Helper()

	p, err := scene.NewProject("Tester")
	if err != nil {
		t.Fatalf("NewProject() error = %v", err)
	}

	s := scene.NewScene()
	s.Name = "Scene"
	stage := scene.NewStage()
	stage.Positions = []scene.Position{{
		Events: []string{"Scene_S1_P1"},
		Sex:    scene.Sex{Male: true},
		Race:   "Human",
	}}
	s.Stages = []*scene.Stage{stage}
	s.Root = stage.ID
	s.Graph[stage.ID] = &scene.Node{}
	p.SaveScene(s)

	path := filepath.Join(t.TempDir(), name+scene.FileExt)
	if err := p.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	return path
}

// TestHandleCreate tests the pack_create handler.
func TestHandleCreate(t *testing.T) {
	h := NewHandlers(config.DefaultConfig())
	ctx := context.Background()
	tmpDir := t.TempDir()

	tests := []struct {
		name      string
		args      map[string]any
		wantError bool
		errorCode string
	}{
		{
			name: "create with author",
			args: map[string]any{
				"path":   filepath.Join(tmpDir, "Fresh"),
				"author": "Tester",
			},
			wantError: false,
		},
		{
			name:      "create without path",
			args:      map[string]any{},
			wantError: true,
			errorCode: "INVALID_REQUEST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := h.HandleCreate(ctx, makeRequest(tt.args))
			if err != nil {
				t.Fatalf("handler returned error: %v", err)
			}

			if tt.wantError {
				if !result.IsError {
					t.Errorf("expected error result, got success")
				}
				if tt.errorCode != "" {
					assertErrorCode(t, result, tt.errorCode)
				}
			} else {
				output := parseOutput(t, result)
				if output["pack_author"] != "Tester" {
					t.Errorf("pack_author = %v, want Tester", output["pack_author"])
				}
				if len(output["prefix_hash"].(string)) != scene.PrefixHashLen {
					t.Errorf("prefix_hash = %v", output["prefix_hash"])
				}
			}
		})
	}
}

// TestHandleCompile tests the pack_compile handler.
func TestHandleCompile(t *testing.T) {
	h := NewHandlers(config.DefaultConfig())
	ctx := context.Background()

	projectPath := buildProject(t, "McpPack")
	outRoot := t.TempDir()

	result, err := h.HandleCompile(ctx, makeRequest(map[string]any{
		"project": projectPath,
		"out":     outRoot,
	}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	output := parseOutput(t, result)

	registryPath, _ := output["registry_path"].(string)
	if registryPath == "" {
		t.Fatal("registry_path missing from output")
	}
	if _, err := os.Stat(registryPath); err != nil {
		t.Errorf("registry not written: %v", err)
	}
	if output["scenes"].(float64) != 1 {
		t.Errorf("scenes = %v, want 1", output["scenes"])
	}
}

func TestHandleCompile_MissingProject(t *testing.T) {
	h := NewHandlers(config.DefaultConfig())

	result, err := h.HandleCompile(context.Background(), makeRequest(map[string]any{
		"project": filepath.Join(t.TempDir(), "missing"+scene.FileExt),
		"out":     t.TempDir(),
	}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected error result")
	}
	assertErrorCode(t, result, "NOT_FOUND")
}

// TestHandleImportSLAL tests the pack_import_slal handler.
func TestHandleImportSLAL(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DefaultAuthor = "Configured"
	h := NewHandlers(cfg)
	ctx := context.Background()

	doc := `{"name": "Old", "animations": [{"name": "A", "actors": [
		{"type": "male", "stages": [{"id": "E1"}]}
	]}]}`
	docPath := filepath.Join(t.TempDir(), "old.json")
	if err := os.WriteFile(docPath, []byte(doc), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	savePath := filepath.Join(t.TempDir(), "Old"+scene.FileExt)
	result, err := h.HandleImportSLAL(ctx, makeRequest(map[string]any{
		"path": docPath,
		"save": savePath,
	}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	output := parseOutput(t, result)
	if output["scenes"].(float64) != 1 {
		t.Errorf("scenes = %v, want 1", output["scenes"])
	}

	// Configured default author applies when the request omits one
	p, err := scene.Load(savePath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p.PackAuthor != "Configured" {
		t.Errorf("PackAuthor = %q, want %q", p.PackAuthor, "Configured")
	}
}

func TestHandleImportSLAL_Malformed(t *testing.T) {
	h := NewHandlers(config.DefaultConfig())

	docPath := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(docPath, []byte(`{"animations": []}`), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	result, err := h.HandleImportSLAL(context.Background(), makeRequest(map[string]any{
		"path": docPath,
	}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected error result")
	}
	assertErrorCode(t, result, "MALFORMED_DOCUMENT")
}

// TestHandleApplyOffsets tests the pack_apply_offsets handler.
func TestHandleApplyOffsets(t *testing.T) {
	h := NewHandlers(config.DefaultConfig())
	ctx := context.Background()

	projectPath := buildProject(t, "OffsetPack")
	p, err := scene.Load(projectPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	var sceneID, stageID string
	for id, s := range p.Scenes {
		sceneID = id
		stageID = s.Stages[0].ID
	}

	offsetsPath := filepath.Join(t.TempDir(), "offsets.yaml")
	doc := sceneID + ":\n  " + stageID + ":\n    - {x: 3, y: 0, z: 0, r: 0}\n"
	if err := os.WriteFile(offsetsPath, []byte(doc), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	result, err := h.HandleApplyOffsets(ctx, makeRequest(map[string]any{
		"project": projectPath,
		"offsets": offsetsPath,
	}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	output := parseOutput(t, result)
	if output["stages_updated"].(float64) != 1 {
		t.Errorf("stages_updated = %v, want 1", output["stages_updated"])
	}
}

// TestHandleValidate tests the pack_validate handler.
func TestHandleValidate(t *testing.T) {
	h := NewHandlers(config.DefaultConfig())

	result, err := h.HandleValidate(context.Background(), makeRequest(map[string]any{
		"project": buildProject(t, "ValidPack"),
	}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	output := parseOutput(t, result)
	if output["scenes"].(float64) != 1 || output["valid"].(float64) != 1 {
		t.Errorf("output = %v, want 1 scene all valid", output)
	}
}

// TestHandleInspectAndScenes round-trips a compile through inspect and scenes.
func TestHandleInspectAndScenes(t *testing.T) {
	h := NewHandlers(config.DefaultConfig())
	ctx := context.Background()

	projectPath := buildProject(t, "RoundTrip")
	outRoot := t.TempDir()

	compileResult, err := h.HandleCompile(ctx, makeRequest(map[string]any{
		"project": projectPath,
		"out":     outRoot,
	}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	compileOutput := parseOutput(t, compileResult)

	inspectResult, err := h.HandleInspect(ctx, makeRequest(map[string]any{
		"path": compileOutput["registry_path"],
	}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	inspectOutput := parseOutput(t, inspectResult)
	if inspectOutput["pack_name"] != "RoundTrip" {
		t.Errorf("pack_name = %v, want RoundTrip", inspectOutput["pack_name"])
	}

	scenesResult, err := h.HandleScenes(ctx, makeRequest(map[string]any{
		"project": projectPath,
	}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	scenesOutput := parseOutput(t, scenesResult)
	if items := scenesOutput["scenes"].([]any); len(items) != 1 {
		t.Errorf("scenes = %v, want 1 item", items)
	}
}

func TestServerRegistration(t *testing.T) {
	s := NewServer(config.DefaultConfig(), "test")
	tools := s.ListTools()
	if tools == nil {
		t.Fatal("expected tools to be registered, got nil")
	}

	expectedTools := []string{
		"pack_create",
		"pack_compile",
		"pack_import_slal",
		"pack_apply_offsets",
		"pack_validate",
		"pack_inspect",
		"pack_scenes",
	}

	if len(tools) != len(expectedTools) {
		t.Errorf("registered tool count = %d, want %d", len(tools), len(expectedTools))
	}

	for _, name := range expectedTools {
		if _, ok := tools[name]; !ok {
			t.Errorf("missing registered tool: %s", name)
		}
	}
}

func TestServerRegistration_WithDisabledTools(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DisabledTools = []string{"pack_import_slal", "pack_apply_offsets"}
	s := NewServer(cfg, "test")
	tools := s.ListTools()

	if len(tools) != 5 {
		t.Errorf("registered tool count = %d, want 5", len(tools))
	}

	for _, name := range []string{"pack_import_slal", "pack_apply_offsets"} {
		if _, ok := tools[name]; ok {
			t.Errorf("disabled tool %q should not be registered", name)
		}
	}

	for _, name := range []string{"pack_create", "pack_compile", "pack_validate"} {
		if _, ok := tools[name]; !ok {
			t.Errorf("core tool %q should be registered", name)
		}
	}
}

func TestServerRegistration_AllToolsDisabled(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DisabledTools = AllToolNames()
	s := NewServer(cfg, "test")

	if tools := s.ListTools(); len(tools) != 0 {
		t.Errorf("registered tool count = %d, want 0 (all disabled)", len(tools))
	}
}

func TestValidateDisabledTools(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		wantLen int
	}{
		{
			name:    "all valid",
			input:   []string{"pack_compile", "pack_inspect"},
			wantLen: 0,
		},
		{
			name:    "one unknown",
			input:   []string{"pack_compile", "fake_tool"},
			wantLen: 1,
		},
		{
			name:    "all unknown",
			input:   []string{"foo", "bar", "baz"},
			wantLen: 3,
		},
		{
			name:    "empty list",
			input:   []string{},
			wantLen: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unknown := ValidateDisabledTools(tt.input)
			if len(unknown) != tt.wantLen {
				t.Errorf("ValidateDisabledTools() returned %d unknown, want %d", len(unknown), tt.wantLen)
			}
		})
	}
}

func TestAllToolNames(t *testing.T) {
	names := AllToolNames()

	if len(names) != 7 {
		t.Errorf("AllToolNames() returned %d names, want 7", len(names))
	}

	unknown := ValidateDisabledTools(names)
	if len(unknown) != 0 {
		t.Errorf("AllToolNames() returned invalid names: %v", unknown)
	}
}

func TestErrorResult_InternalDoesNotExposeDetails(t *testing.T) {
	r := errorResult(errors.NewInternal(fmt.Errorf("open /tmp/secret: permission denied")))
	if !r.IsError {
		t.Fatal("expected IsError=true")
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(r.Content[0].(mcp.TextContent).Text), &payload); err != nil {
		t.Fatalf("failed to unmarshal error payload: %v", err)
	}
	errObj := payload["error"].(map[string]any)

	if errObj["code"] != string(errors.ErrInternal) {
		t.Fatalf("code=%v, want %v", errObj["code"], errors.ErrInternal)
	}
	if _, ok := errObj["details"]; ok {
		t.Fatal("expected INTERNAL errors to omit details")
	}
}

func TestErrorResult_NonInternalIncludesDetails(t *testing.T) {
	r := errorResult(errors.NewNotFound("abc"))
	if !r.IsError {
		t.Fatal("expected IsError=true")
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(r.Content[0].(mcp.TextContent).Text), &payload); err != nil {
		t.Fatalf("failed to unmarshal error payload: %v", err)
	}
	errObj := payload["error"].(map[string]any)

	if errObj["code"] != string(errors.ErrNotFound) {
		t.Fatalf("code=%v, want %v", errObj["code"], errors.ErrNotFound)
	}
	if _, ok := errObj["details"]; !ok {
		t.Fatal("expected non-INTERNAL errors to include details when present")
	}
}

// Helper functions

// parseOutput extracts and unmarshals the JSON output from an MCP result.
func parseOutput(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()
	if result.IsError {
		t.Fatalf("expected success, got error: %v", extractErrorMessage(result))
	}
	var output map[string]any
	if err := json.Unmarshal([]byte(result.Content[0].(mcp.TextContent).Text), &output); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	return output
}

func assertErrorCode(t *testing.T, result *mcp.CallToolResult, expectedCode string) {
	t.Helper()

	if len(result.Content) == 0 {
		t.Errorf("no content in error result")
		return
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Errorf("content is not TextContent")
		return
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(text.Text), &payload); err != nil {
		t.Errorf("failed to unmarshal error payload: %v", err)
		return
	}

	errorObj, ok := payload["error"].(map[string]any)
	if !ok {
		t.Errorf("no error object in payload")
		return
	}

	code, ok := errorObj["code"].(string)
	if !ok {
		t.Errorf("no code in error object")
		return
	}

	if code != expectedCode {
		t.Errorf("got error code %q, want %q", code, expectedCode)
	}
}

func extractErrorMessage(result *mcp.CallToolResult) string {
	if len(result.Content) == 0 {
		return "<no content>"
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		return "<not text content>"
	}

	return text.Text
}
