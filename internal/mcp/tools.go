package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Tool definitions. Descriptions are what an MCP client shows the model,
// so they spell out required fields and defaults.

var createToolDef = mcp.NewTool("pack_create",
	mcp.WithDescription("Create a new empty animation pack project file with a generated prefix hash."),
	mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Destination path; the project file extension is appended if absent."),
	),
	mcp.WithString("author",
		mcp.Description("Pack author. Defaults to the configured default author."),
	),
)

var compileToolDef = mcp.NewTool("pack_compile",
	mcp.WithDescription("Compile a pack project into the binary scene registry and per-race behavior list files."),
	mcp.WithString("project",
		mcp.Required(),
		mcp.Description("Path to the project file."),
	),
	mcp.WithString("out",
		mcp.Description("Output root directory. Defaults to the configured output root."),
	),
	mcp.WithBoolean("blank_prefix",
		mcp.Description("Also emit behavior lines with an empty namespace token. Overrides the configured default."),
	),
)

var importSLALToolDef = mcp.NewTool("pack_import_slal",
	mcp.WithDescription("Reconstruct a pack project from a legacy SLAL pack description (JSON)."),
	mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Path to the legacy document."),
	),
	mcp.WithString("save",
		mcp.Description("Where to save the reconstructed project. Omit for a dry run."),
	),
	mcp.WithString("author",
		mcp.Description("Pack author for the reconstructed project."),
	),
)

var applyOffsetsToolDef = mcp.NewTool("pack_apply_offsets",
	mcp.WithDescription("Apply a YAML offset-override document to a pack project and save it in place."),
	mcp.WithString("project",
		mcp.Required(),
		mcp.Description("Path to the project file."),
	),
	mcp.WithString("offsets",
		mcp.Required(),
		mcp.Description("Path to the YAML offset document."),
	),
)

var validateToolDef = mcp.NewTool("pack_validate",
	mcp.WithDescription("Check every scene of a pack project for states that would not compile."),
	mcp.WithString("project",
		mcp.Required(),
		mcp.Description("Path to the project file."),
	),
	mcp.WithBoolean("update",
		mcp.Description("Rewrite per-scene warning flags from the validation verdicts and save the project."),
	),
)

var inspectToolDef = mcp.NewTool("pack_inspect",
	mcp.WithDescription("Decode a compiled scene registry file and report its contents."),
	mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Path to the compiled registry file."),
	),
)

var scenesToolDef = mcp.NewTool("pack_scenes",
	mcp.WithDescription("List the scenes of a pack project."),
	mcp.WithString("project",
		mcp.Required(),
		mcp.Description("Path to the project file."),
	),
)
