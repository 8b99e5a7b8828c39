// Command analyze prints quick, human-readable heuristics about mission files
// in a missions directory. It summarizes dimensions, obstacle density, the
// rover start and heading, and dry-runs each mission's own command string to
// show how many moves succeed, wrap around an edge or hit an obstacle.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"

	"github.com/wricardo/mcp-training/marsrover/rover/engine"
)

// MissionAnalysis holds the figures reported for a single mission file
type MissionAnalysis struct {
	File      string
	Name      string
	Width     int
	Height    int
	Obstacles int
	Density   float64
	Start     engine.Coord
	Heading   engine.Direction
	Enclosed  bool
	Map       []string

	Requested  int
	Succeeded  int
	Blocked    []engine.Coord
	Wraps      int
	End        engine.Coord
	EndHeading engine.Direction
	// Displacement is the Manhattan distance between start and end, ignoring wrap
	Displacement int
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env: %v", err)
	}

	dir := os.Getenv("MISSION_DIR")
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}
	if dir == "" {
		dir = "missions"
	}

	files, err := missionFiles(dir)
	if err != nil {
		log.Fatalf("Failed to list missions: %v", err)
	}
	if len(files) == 0 {
		fmt.Printf("No mission files found in %s\n", dir)
		return
	}

	for _, file := range files {
		fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(file))
		analysis, err := analyzeMission(file)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		printAnalysis(os.Stdout, analysis)
	}
}

func missionFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, err := engine.FormatFromPath(entry.Name()); err == nil {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func analyzeMission(path string) (*MissionAnalysis, error) {
	config, err := engine.LoadMissionConfig(path)
	if err != nil {
		return nil, err
	}

	terrain, rover, err := config.NewMission()
	if err != nil {
		return nil, err
	}

	analysis := &MissionAnalysis{
		File:      filepath.Base(path),
		Name:      config.Name,
		Width:     terrain.Width(),
		Height:    terrain.Height(),
		Obstacles: engine.CountObstacles(terrain),
		Density:   engine.ObstacleDensity(terrain),
		Start:     rover.Position(),
		Heading:   rover.Direction(),
		Enclosed:  engine.IsEnclosed(terrain, rover.Position()),
		Map:       engine.RenderMap(terrain, rover),
	}

	// Dry run
	commands := engine.ParseCommands(config.Commands)
	analysis.Requested = len(commands)
	for _, cmd := range commands {
		step := rover.Step(cmd)
		target, _ := rover.Destination(cmd)
		if !rover.Execute(cmd) {
			analysis.Blocked = append(analysis.Blocked, target)
			continue
		}
		analysis.Succeeded++
		if cmd.IsMove() && step != target {
			analysis.Wraps++
		}
	}

	analysis.End = rover.Position()
	analysis.EndHeading = rover.Direction()
	analysis.Displacement = abs(analysis.End.X-analysis.Start.X) + abs(analysis.End.Y-analysis.Start.Y)

	return analysis, nil
}

func printAnalysis(w io.Writer, a *MissionAnalysis) {
	fmt.Fprintf(w, "Name: %s\n", a.Name)
	fmt.Fprintf(w, "Grid Size: %d x %d\n", a.Width, a.Height)
	fmt.Fprintf(w, "Obstacles: %d (%.0f%%)\n", a.Obstacles, a.Density*100)
	fmt.Fprintf(w, "Start: %s facing %s\n", a.Start, a.Heading.Name())
	for _, row := range a.Map {
		fmt.Fprintf(w, "   %s\n", row)
	}

	if a.Enclosed {
		fmt.Fprintf(w, "⚠️  WARNING: every cell next to the start is blocked, no move can succeed\n")
	}

	fmt.Fprintf(w, "Dry run: %d/%d commands succeeded, %d edge wrap(s)\n", a.Succeeded, a.Requested, a.Wraps)
	if len(a.Blocked) > 0 {
		fmt.Fprintf(w, "⚠️  %d move(s) blocked by obstacles\n", len(a.Blocked))
		for i, c := range a.Blocked {
			if i < 5 {
				fmt.Fprintf(w, "   Blocked at: %s\n", c)
			}
		}
		if len(a.Blocked) > 5 {
			fmt.Fprintf(w, "   ... and %d more\n", len(a.Blocked)-5)
		}
	} else {
		fmt.Fprintf(w, "✅ No moves blocked\n")
	}
	fmt.Fprintf(w, "End: %s facing %s (displacement %d)\n", a.End, a.EndHeading.Name(), a.Displacement)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
