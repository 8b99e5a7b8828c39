// Package validate checks mission files before they are run. It reports:
//   - Decode failures and structural errors (dimensions, layout characters,
//     out-of-bounds obstacles or rover start, unknown heading)
//   - Warnings for a rover starting on an obstacle, unrecognized command
//     tokens, duplicate obstacles and a start cell boxed in on all sides
//   - Connectivity: how many clear cells the rover can reach from its start,
//     following the same wrap-around rules as the engine
package validate

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wricardo/mcp-training/marsrover/rover/engine"
)

// ValidationResult captures the outcome of validating a single file.
// Errors make the file invalid; Warnings and Info never do.
type ValidationResult struct {
	File     string
	Valid    bool
	Errors   []string
	Warnings []string
	Info     []string
}

// ValidateFile loads and validates a single mission file
func ValidateFile(filePath string) ValidationResult {
	result := ValidationResult{
		File:  filepath.Base(filePath),
		Valid: true,
	}

	format, err := engine.FormatFromPath(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	config, err := engine.DecodeMissionConfig(data, format)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid %s: %v", strings.ToUpper(string(format)), err))
		return result
	}

	return validateMission(result, config)
}

// ValidateMission validates an already decoded mission
func ValidateMission(name string, config *engine.MissionConfig) ValidationResult {
	return validateMission(ValidationResult{File: name, Valid: true}, config)
}

func validateMission(result ValidationResult, config *engine.MissionConfig) ValidationResult {
	if err := engine.ValidateMissionConfig(config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	terrain, rover, err := config.NewMission()
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	start := rover.Position()

	if !terrain.IsClear(start) {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Rover starts on an obstacle at %s", start))
	}

	if duplicates := duplicateObstacles(config.AllObstacles()); len(duplicates) > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Duplicate obstacles: %s", joinCoords(duplicates)))
	}

	commands, ignored := engine.SplitCommands(config.Commands)
	if len(ignored) > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Commands contain %d unrecognized token(s) that will be ignored: %s",
			len(ignored), strings.Join(ignored, ", ")))
	}

	if engine.IsEnclosed(terrain, start) {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Rover at %s is enclosed: every neighboring cell is blocked", start))
	}

	reachable := reachableCells(terrain, start)
	clearCells := terrain.Width()*terrain.Height() - engine.CountObstacles(terrain)
	if reachable < clearCells {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Connectivity: %d/%d clear cells reachable from start", reachable, clearCells))
	} else {
		result.Info = append(result.Info, fmt.Sprintf("Connectivity: all %d clear cells reachable from start", clearCells))
	}

	result.Info = append(result.Info,
		fmt.Sprintf("Name: %s", config.Name),
		fmt.Sprintf("Grid: %dx%d", terrain.Width(), terrain.Height()),
		fmt.Sprintf("Obstacles: %d", engine.CountObstacles(terrain)),
		fmt.Sprintf("Rover: %s facing %s", start, rover.Direction()),
		fmt.Sprintf("Commands: %d", len(commands)),
	)

	return result
}

// ValidateDir validates every mission file in dir, sorted by name
func ValidateDir(dir string) ([]ValidationResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read mission directory: %w", err)
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

	results := make([]ValidationResult, 0, len(files))
	for _, file := range files {
		results = append(results, ValidateFile(file))
	}
	return results, nil
}

// PrintReport writes a concise report and returns true when every file is valid
func PrintReport(w io.Writer, results []ValidationResult) bool {
	allValid := true
	for _, result := range results {
		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(w, "VALID")
			for _, info := range result.Info {
				fmt.Fprintln(w, "  "+info)
			}
		} else {
			fmt.Fprintln(w, "INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Fprintln(w, "  error: "+err)
			}
		}
		for _, warning := range result.Warnings {
			fmt.Fprintln(w, "  warning: "+warning)
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Fprintln(w, "All missions are valid")
	} else {
		fmt.Fprintln(w, "Some missions have errors")
	}
	return allValid
}

// reachableCells flood-fills from start over clear cells using wrapped steps.
// A blocked start cell is not counted.
func reachableCells(terrain *engine.Terrain, start engine.Coord) int {
	visited := map[engine.Coord]bool{start: true}
	queue := []engine.Coord{start}
	count := 0

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if terrain.IsClear(current) {
			count++
		}

		for _, next := range engine.Neighbors(terrain, current) {
			if !visited[next] && terrain.IsClear(next) {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}

	return count
}

func duplicateObstacles(obstacles []engine.Coord) []engine.Coord {
	seen := make(map[engine.Coord]int)
	var duplicates []engine.Coord
	for _, c := range obstacles {
		seen[c]++
		if seen[c] == 2 {
			duplicates = append(duplicates, c)
		}
	}
	return duplicates
}

func joinCoords(coords []engine.Coord) string {
	parts := make([]string, len(coords))
	for i, c := range coords {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}
