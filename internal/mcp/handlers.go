package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/saelir/scenepack/internal/config"
	"github.com/saelir/scenepack/internal/errors"
	"github.com/saelir/scenepack/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	cfg *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(cfg *config.Config) *Handlers {
	return &Handlers{cfg: cfg}
}

// Request types for each tool

// CreateRequest represents the arguments for pack_create.
type CreateRequest struct {
	Path   string `json:"path"`
	Author string `json:"author,omitempty"`
}

// CompileRequest represents the arguments for pack_compile.
type CompileRequest struct {
	Project     string `json:"project"`
	Out         string `json:"out,omitempty"`
	BlankPrefix *bool  `json:"blank_prefix,omitempty"`
}

// ImportSLALRequest represents the arguments for pack_import_slal.
type ImportSLALRequest struct {
	Path   string `json:"path"`
	Save   string `json:"save,omitempty"`
	Author string `json:"author,omitempty"`
}

// ApplyOffsetsRequest represents the arguments for pack_apply_offsets.
type ApplyOffsetsRequest struct {
	Project string `json:"project"`
	Offsets string `json:"offsets"`
}

// ValidateRequest represents the arguments for pack_validate.
type ValidateRequest struct {
	Project string `json:"project"`
	Update  bool   `json:"update,omitempty"`
}

// InspectRequest represents the arguments for pack_inspect.
type InspectRequest struct {
	Path string `json:"path"`
}

// ScenesRequest represents the arguments for pack_scenes.
type ScenesRequest struct {
	Project string `json:"project"`
}

// Handler implementations

// HandleCreate handles the pack_create tool call.
func (h *Handlers) HandleCreate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CreateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Create(h.cfg, ops.CreateInput{
		Path:   input.Path,
		Author: input.Author,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleCompile handles the pack_compile tool call.
func (h *Handlers) HandleCompile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CompileRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Compile(h.cfg, ops.CompileInput{
		ProjectPath: input.Project,
		OutputRoot:  input.Out,
		BlankPrefix: input.BlankPrefix,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleImportSLAL handles the pack_import_slal tool call.
func (h *Handlers) HandleImportSLAL(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ImportSLALRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	author := input.Author
	if author == "" {
		author = h.cfg.DefaultAuthor
	}

	result, err := ops.ImportSLAL(ops.ImportSLALInput{
		Path:     input.Path,
		SavePath: input.Save,
		Author:   author,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleApplyOffsets handles the pack_apply_offsets tool call.
func (h *Handlers) HandleApplyOffsets(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ApplyOffsetsRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ApplyOffsets(ops.ApplyOffsetsInput{
		ProjectPath: input.Project,
		OffsetsPath: input.Offsets,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleValidate handles the pack_validate tool call.
func (h *Handlers) HandleValidate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ValidateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Validate(ops.ValidateInput{
		ProjectPath: input.Project,
		Update:      input.Update,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleInspect handles the pack_inspect tool call.
func (h *Handlers) HandleInspect(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[InspectRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Inspect(ops.InspectInput{Path: input.Path})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleScenes handles the pack_scenes tool call.
func (h *Handlers) HandleScenes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ScenesRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Scenes(ops.ScenesInput{ProjectPath: input.Project})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if packErr, ok := err.(*errors.PackError); ok {
		errorObj := map[string]any{
			"code":    packErr.Code,
			"message": packErr.Message,
			"status":  packErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths
		if packErr.Code != errors.ErrInternal && packErr.Details != nil {
			errorObj["details"] = packErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
