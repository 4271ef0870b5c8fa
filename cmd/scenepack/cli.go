package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/saelir/scenepack/internal/config"
	"github.com/saelir/scenepack/internal/errors"
	"github.com/saelir/scenepack/internal/ops"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(cfg *config.Config) *cli.App {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	app := &cli.App{
		Name:    "scenepack",
		Usage:   "Animation scene pack compiler",
		Version: Version,
		Commands: []*cli.Command{
			newCmd(cfg),
			compileCmd(cfg),
			importSLALCmd(cfg),
			importOffsetsCmd(),
			validateCmd(),
			inspectCmd(),
			scenesCmd(),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// newCmd creates the new command.
func newCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "new",
		Usage:     "Create a new empty pack project",
		ArgsUsage: "<path>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "author", Aliases: []string{"a"}, Usage: "Pack author (defaults to configured author)"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("path argument is required"))
			}

			output, err := ops.Create(cfg, ops.CreateInput{
				Path:   c.Args().First(),
				Author: c.String("author"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// compileCmd creates the compile command.
func compileCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "compile",
		Usage:     "Compile a project into the binary registry and list files",
		ArgsUsage: "<project>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Output root directory (defaults to configured root)"},
			&cli.BoolFlag{Name: "blank-prefix", Usage: "Also emit behavior lines with an empty namespace token"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("project argument is required"))
			}

			input := ops.CompileInput{
				ProjectPath: c.Args().First(),
				OutputRoot:  c.String("out"),
			}
			if c.IsSet("blank-prefix") {
				blank := c.Bool("blank-prefix")
				input.BlankPrefix = &blank
			}

			output, err := ops.Compile(cfg, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// importSLALCmd creates the import-slal command.
func importSLALCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "import-slal",
		Usage:     "Reconstruct a project from a legacy SLAL pack description",
		ArgsUsage: "<path>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "save", Aliases: []string{"s"}, Usage: "Where to save the reconstructed project (omit for a dry run)"},
			&cli.StringFlag{Name: "author", Aliases: []string{"a"}, Usage: "Pack author (defaults to configured author)"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("path argument is required"))
			}

			author := c.String("author")
			if author == "" {
				author = cfg.DefaultAuthor
			}

			output, err := ops.ImportSLAL(ops.ImportSLALInput{
				Path:     c.Args().First(),
				SavePath: c.String("save"),
				Author:   author,
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// importOffsetsCmd creates the import-offsets command.
func importOffsetsCmd() *cli.Command {
	return &cli.Command{
		Name:      "import-offsets",
		Usage:     "Apply a YAML offset-override document to a project",
		ArgsUsage: "<project>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "offsets", Aliases: []string{"f"}, Required: true, Usage: "Path to the YAML offset document"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("project argument is required"))
			}

			output, err := ops.ApplyOffsets(ops.ApplyOffsetsInput{
				ProjectPath: c.Args().First(),
				OffsetsPath: c.String("offsets"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// validateCmd creates the validate command.
func validateCmd() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "Check every scene of a project for uncompilable states",
		ArgsUsage: "<project>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "update", Aliases: []string{"u"}, Usage: "Rewrite per-scene warning flags and save the project"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("project argument is required"))
			}

			output, err := ops.Validate(ops.ValidateInput{
				ProjectPath: c.Args().First(),
				Update:      c.Bool("update"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// inspectCmd creates the inspect command.
func inspectCmd() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Decode a compiled registry file and report its contents",
		ArgsUsage: "<path>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("path argument is required"))
			}

			output, err := ops.Inspect(ops.InspectInput{
				Path: c.Args().First(),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// scenesCmd creates the scenes command.
func scenesCmd() *cli.Command {
	return &cli.Command{
		Name:      "scenes",
		Usage:     "List the scenes of a project",
		ArgsUsage: "<project>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("project argument is required"))
			}

			output, err := ops.Scenes(ops.ScenesInput{
				ProjectPath: c.Args().First(),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if packErr, ok := err.(*errors.PackError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", packErr.Code, packErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
