package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Layout cell characters
const (
	ClearCell    = '.'
	ObstacleCell = '#'
)

// Format identifies a mission file encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var ErrUnsupportedFormat = errors.New("unsupported mission format")

// RoverConfig is the starting state of the rover in a mission
type RoverConfig struct {
	Start     Coord  `json:"start" yaml:"start"`
	Direction string `json:"direction" yaml:"direction"`
}

// MissionConfig describes a terrain, a rover start and a default command string.
// Either Width/Height/Obstacles or Layout define the terrain; both may be given
// as long as they agree. Layout rows run north to south, so Layout[0] is the
// row y = height-1.
type MissionConfig struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Width       int         `json:"width,omitempty" yaml:"width,omitempty"`
	Height      int         `json:"height,omitempty" yaml:"height,omitempty"`
	Layout      []string    `json:"layout,omitempty" yaml:"layout,omitempty"`
	Obstacles   []Coord     `json:"obstacles,omitempty" yaml:"obstacles,omitempty"`
	Rover       RoverConfig `json:"rover" yaml:"rover"`
	Commands    string      `json:"commands,omitempty" yaml:"commands,omitempty"`
}

// Dimensions returns the terrain size, taken from Layout when present
func (m *MissionConfig) Dimensions() (width, height int) {
	if len(m.Layout) > 0 {
		return len(m.Layout[0]), len(m.Layout)
	}
	return m.Width, m.Height
}

// AllObstacles merges the explicit obstacle list with the ones drawn in Layout
func (m *MissionConfig) AllObstacles() []Coord {
	obstacles := make([]Coord, 0, len(m.Obstacles))
	obstacles = append(obstacles, m.Obstacles...)

	height := len(m.Layout)
	for i, row := range m.Layout {
		y := height - 1 - i
		for x, ch := range row {
			if ch == ObstacleCell {
				obstacles = append(obstacles, Coord{X: x, Y: y})
			}
		}
	}
	return obstacles
}

func invalidMission(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidMission}, args...)...)
}

// ValidateMissionConfig checks a mission for a usable terrain and rover start
func ValidateMissionConfig(config *MissionConfig) error {
	if config == nil {
		return invalidMission("config cannot be nil")
	}
	if config.Name == "" {
		return invalidMission("name is required")
	}

	// Validate layout
	if len(config.Layout) > 0 {
		rowWidth := len(config.Layout[0])
		for i, row := range config.Layout {
			if len(row) != rowWidth {
				return invalidMission("layout row %d must have %d characters, got %d", i+1, rowWidth, len(row))
			}
			for j, ch := range row {
				if ch != ClearCell && ch != ObstacleCell {
					return invalidMission("invalid character '%c' at layout row %d, col %d", ch, i+1, j+1)
				}
			}
		}
		if config.Width != 0 && config.Width != rowWidth {
			return invalidMission("width %d does not match layout width %d", config.Width, rowWidth)
		}
		if config.Height != 0 && config.Height != len(config.Layout) {
			return invalidMission("height %d does not match layout height %d", config.Height, len(config.Layout))
		}
	}

	// Validate grid size
	width, height := config.Dimensions()
	if width < MinGridSize || width > MaxGridSize {
		return invalidMission("width must be between %d and %d, got %d", MinGridSize, MaxGridSize, width)
	}
	if height < MinGridSize || height > MaxGridSize {
		return invalidMission("height must be between %d and %d, got %d", MinGridSize, MaxGridSize, height)
	}

	inBounds := func(c Coord) bool {
		return c.X >= 0 && c.X < width && c.Y >= 0 && c.Y < height
	}

	for i, obstacle := range config.Obstacles {
		if !inBounds(obstacle) {
			return invalidMission("obstacle %d at %s is outside the %dx%d terrain", i+1, obstacle, width, height)
		}
	}

	// Validate rover
	if !inBounds(config.Rover.Start) {
		return invalidMission("rover start %s is outside the %dx%d terrain", config.Rover.Start, width, height)
	}
	if _, err := ParseDirection(config.Rover.Direction); err != nil {
		return invalidMission("rover direction: %v", err)
	}

	return nil
}

// BuildTerrain creates the mission terrain with all obstacles placed
func (m *MissionConfig) BuildTerrain() (*Terrain, error) {
	width, height := m.Dimensions()
	terrain, err := NewTerrain(width, height)
	if err != nil {
		return nil, err
	}
	for _, obstacle := range m.AllObstacles() {
		if err := terrain.AddObstacle(obstacle); err != nil {
			return nil, err
		}
	}
	return terrain, nil
}

// NewMission validates the config and returns its terrain with a rover placed on it
func (m *MissionConfig) NewMission() (*Terrain, *Rover, error) {
	if err := ValidateMissionConfig(m); err != nil {
		return nil, nil, err
	}

	terrain, err := m.BuildTerrain()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build terrain: %w", err)
	}

	direction, err := ParseDirection(m.Rover.Direction)
	if err != nil {
		return nil, nil, err
	}

	rover, err := NewRover(terrain, m.Rover.Start, direction)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to place rover: %w", err)
	}

	return terrain, rover, nil
}

// FormatFromPath picks the encoding from a file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// DecodeMissionConfig parses a mission without validating it
func DecodeMissionConfig(data []byte, format Format) (*MissionConfig, error) {
	var config MissionConfig
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return &config, nil
}

// EncodeMissionConfig serializes a mission in the given format
func EncodeMissionConfig(config *MissionConfig, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(config, "", "  ")
	case FormatYAML:
		return yaml.Marshal(config)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// LoadMissionConfig reads, decodes and validates a mission file
func LoadMissionConfig(path string) (*MissionConfig, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config, err := DecodeMissionConfig(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mission file '%s': %w", path, err)
	}

	if err := ValidateMissionConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultMission returns the built-in 3x3 mission with a single central obstacle
func DefaultMission() *MissionConfig {
	return &MissionConfig{
		Name:        "default",
		Description: "3x3 crater with a boulder in the middle",
		Width:       3,
		Height:      3,
		Obstacles:   []Coord{{X: 1, Y: 1}},
		Rover: RoverConfig{
			Start:     Coord{X: 0, Y: 0},
			Direction: string(East),
		},
		Commands: "f,r,f,f",
	}
}
