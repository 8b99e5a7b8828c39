// Command rover drives a Mars rover across mission terrains from the shell.
//
// Subcommands:
//  1. "run" executes a command string against a mission and reports which
//     commands succeeded, with an optional per-step trace or JSON output
//  2. "list" and "show" inspect the missions directory
//  3. "validate" checks mission files for errors and warnings
//  4. "init" writes the built-in sample mission into the missions directory
//
// The missions directory and debug logging come from flags or from the
// MISSION_DIR and ROVER_DEBUG environment variables (a .env file is honored).
// When OTEL_EXPORTER_OTLP_ENDPOINT is set, runs are traced over OTLP.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/marsrover/rover/config"
	"github.com/wricardo/mcp-training/marsrover/rover/engine"
	"github.com/wricardo/mcp-training/marsrover/rover/service"
	"github.com/wricardo/mcp-training/marsrover/telemetry"
	"github.com/wricardo/mcp-training/marsrover/validate"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Mars Rover"
)

var errValidationFailed = errors.New("one or more missions are invalid")

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if telemetry.Enabled() {
		shutdown, err := telemetry.Setup(ctx, Version)
		if err != nil {
			log.Printf("Warning: failed to set up tracing: %v", err)
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(shutdownCtx); err != nil {
					log.Printf("Warning: failed to flush traces: %v", err)
				}
			}()
		}
	}

	if err := newApp().Run(ctx, os.Args); err != nil {
		log.Printf("Error: %v", err)
		stop()
		os.Exit(1)
	}
}

// newApp builds the command tree
func newApp() *cli.Command {
	return &cli.Command{
		Name:    "rover",
		Usage:   "drive a rover across mission terrains",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "missions-dir",
				Aliases: []string{"d"},
				Value:   "missions",
				Usage:   "directory containing mission files",
				Sources: cli.EnvVars("MISSION_DIR"),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "enable debug logging",
				Sources: cli.EnvVars("ROVER_DEBUG"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("debug") {
				log.SetFlags(log.LstdFlags | log.Lshortfile)
			} else {
				log.SetFlags(log.LstdFlags)
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			runCommand(),
			listCommand(),
			showCommand(),
			validateCommand(),
			initCommand(),
		},
	}
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "execute a command string against a mission",
		ArgsUsage: "[mission]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "commands",
				Aliases: []string{"c"},
				Usage:   "comma-separated commands (f,b,l,r); defaults to the mission's own",
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "run a mission file directly instead of one from the missions directory",
			},
			&cli.BoolFlag{
				Name:  "steps",
				Usage: "print every step",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print the result as JSON",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			var (
				result *service.RunResult
				err    error
			)

			if path := cmd.String("file"); path != "" {
				mission, loadErr := engine.LoadMissionConfig(path)
				if loadErr != nil {
					return loadErr
				}
				result, err = service.NewMissionService(nil).RunConfig(ctx, mission, cmd.String("commands"))
			} else {
				missions, setupErr := newMissionService(cmd)
				if setupErr != nil {
					return setupErr
				}
				result, err = missions.Run(ctx, cmd.Args().First(), cmd.String("commands"))
			}
			if err != nil {
				return err
			}

			log.Printf("Run %s on %s: %d/%d commands succeeded", result.ID, result.Mission, len(result.Succeeded), len(result.Requested))

			w := cmd.Root().Writer
			if cmd.Bool("json") {
				data, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode result: %w", err)
				}
				fmt.Fprintln(w, string(data))
				return nil
			}

			printRunResult(cmd, result)
			return nil
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "list the missions in the missions directory",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			missions, err := newMissionService(cmd)
			if err != nil {
				return err
			}

			infos, err := missions.ListMissions(ctx)
			if err != nil {
				return err
			}

			w := cmd.Root().Writer
			if len(infos) == 0 {
				fmt.Fprintf(w, "No missions in %s\n", cmd.String("missions-dir"))
				return nil
			}
			for _, info := range infos {
				fmt.Fprintf(w, "%-16s %3dx%-3d %3d obstacles  %s\n", info.MissionID, info.Width, info.Height, info.Obstacles, info.Description)
			}
			return nil
		},
	}
}

func showCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "print a mission and its map",
		ArgsUsage: "[mission]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Usage: "print the mission file in this format (json or yaml) instead of a summary",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			missions, err := newMissionService(cmd)
			if err != nil {
				return err
			}

			mission, err := missions.LoadMission(ctx, cmd.Args().First())
			if err != nil {
				return err
			}

			w := cmd.Root().Writer
			if format := cmd.String("format"); format != "" {
				data, err := engine.EncodeMissionConfig(mission, engine.Format(strings.ToLower(format)))
				if err != nil {
					return err
				}
				fmt.Fprint(w, string(data))
				if !strings.HasSuffix(string(data), "\n") {
					fmt.Fprintln(w)
				}
				return nil
			}

			terrain, rover, err := mission.NewMission()
			if err != nil {
				return err
			}

			fmt.Fprintf(w, "Mission: %s\n", mission.Name)
			if mission.Description != "" {
				fmt.Fprintf(w, "Description: %s\n", mission.Description)
			}
			fmt.Fprintf(w, "Grid: %dx%d, %d obstacles\n", terrain.Width(), terrain.Height(), engine.CountObstacles(terrain))
			fmt.Fprintf(w, "Rover: %s facing %s\n", rover.Position(), rover.Direction().Name())
			fmt.Fprintf(w, "Commands: %s\n", mission.Commands)
			for _, row := range engine.RenderMap(terrain, rover) {
				fmt.Fprintln(w, row)
			}
			return nil
		},
	}
}

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "check mission files; checks the whole missions directory when no files are given",
		ArgsUsage: "[files...]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			var results []validate.ValidationResult

			if cmd.NArg() == 0 {
				var err error
				results, err = validate.ValidateDir(cmd.String("missions-dir"))
				if err != nil {
					return err
				}
			} else {
				for _, path := range cmd.Args().Slice() {
					results = append(results, validate.ValidateFile(path))
				}
			}

			if !validate.PrintReport(cmd.Root().Writer, results) {
				return errValidationFailed
			}
			return nil
		},
	}
}

func initCommand() *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "write the sample mission into the missions directory",
		ArgsUsage: "[name]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Value: "json",
				Usage: "file format (json or yaml)",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "overwrite an existing mission",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := cmd.String("missions-dir")
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create missions directory: %w", err)
			}

			name := cmd.Args().First()
			if name == "" {
				name = config.DefaultMissionName
			}
			// --format picks the extension, so drop one given with the name
			if _, err := engine.FormatFromPath(name); err == nil {
				name = strings.TrimSuffix(name, filepath.Ext(name))
			}

			ext := "." + strings.ToLower(cmd.String("format"))
			if _, err := engine.FormatFromPath(ext); err != nil {
				return err
			}
			filename := name + ext

			if _, err := os.Stat(filepath.Join(dir, filename)); err == nil && !cmd.Bool("force") {
				return fmt.Errorf("mission %s already exists (use --force to overwrite)", filename)
			}

			manager, err := config.NewManager(dir)
			if err != nil {
				return err
			}

			mission := engine.DefaultMission()
			mission.Name = name
			if err := manager.SaveConfig(filename, mission); err != nil {
				return err
			}

			fmt.Fprintf(cmd.Root().Writer, "Wrote %s\n", filepath.Join(dir, filename))
			return nil
		},
	}
}

// newMissionService wires the config manager for the selected directory into a service
func newMissionService(cmd *cli.Command) (service.MissionService, error) {
	manager, err := config.NewManager(cmd.String("missions-dir"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize missions: %w", err)
	}
	return service.NewMissionService(manager), nil
}

func printRunResult(cmd *cli.Command, result *service.RunResult) {
	w := cmd.Root().Writer

	fmt.Fprintf(w, "Mission: %s\n", result.Mission)
	fmt.Fprintf(w, "Commands: %s\n", result.Commands)
	if len(result.Ignored) > 0 {
		fmt.Fprintf(w, "Ignored: %s\n", strings.Join(result.Ignored, ","))
	}

	if cmd.Bool("steps") {
		for _, step := range result.Steps {
			status := "ok"
			if !step.Success {
				status = "blocked"
			}
			fmt.Fprintf(w, "  %2d %s %s%s -> %s%s %s\n", step.Idx, step.Command,
				step.From, step.HeadingBefore, step.To, step.HeadingAfter, status)
		}
	}

	fmt.Fprintf(w, "Succeeded: %s (%d/%d)\n", joinCommands(result.Succeeded), len(result.Succeeded), len(result.Requested))
	if result.FirstBlocked != nil {
		fmt.Fprintf(w, "First blocked: step %d (%s) at (%d,%d)\n", result.FirstBlocked.StepIdx,
			result.FirstBlocked.Command, result.FirstBlocked.X, result.FirstBlocked.Y)
	}
	fmt.Fprintf(w, "Position: %s facing %s\n", result.EndPos, result.EndHeading.Name())
	for _, row := range result.Map {
		fmt.Fprintln(w, row)
	}
}

func joinCommands(commands []engine.Command) string {
	parts := make([]string, len(commands))
	for i, c := range commands {
		parts[i] = string(c)
	}
	return strings.Join(parts, ",")
}
