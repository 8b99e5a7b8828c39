package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Command is a single-step rover instruction
type Command string

const (
	Forward  Command = "f"
	Backward Command = "b"
	Left     Command = "l"
	Right    Command = "r"
)

// Direction is the rover heading
type Direction string

const (
	North Direction = "N"
	South Direction = "S"
	East  Direction = "E"
	West  Direction = "W"
)

const (
	// Validation constants
	MinGridSize = 1
	MaxGridSize = 1000

	// CommandSeparator splits tokens in a command string
	CommandSeparator = ","
)

var (
	ErrInvalidDimensions = errors.New("invalid terrain dimensions")
	ErrOutOfBounds       = errors.New("coordinate out of bounds")
	ErrNilTerrain        = errors.New("terrain cannot be nil")
	ErrInvalidDirection  = errors.New("invalid direction")
	ErrInvalidMission    = errors.New("invalid mission")
)

var allCommands = []Command{Forward, Backward, Left, Right}

// AllCommands returns every valid command in canonical order
func AllCommands() []Command {
	commands := make([]Command, len(allCommands))
	copy(commands, allCommands)
	return commands
}

// Valid reports whether c is one of the recognized commands
func (c Command) Valid() bool {
	for _, known := range allCommands {
		if c == known {
			return true
		}
	}
	return false
}

// IsMove reports whether c changes position rather than heading
func (c Command) IsMove() bool {
	return c == Forward || c == Backward
}

// Directions maps direction names to their headings
var Directions = map[string]Direction{
	"north": North,
	"south": South,
	"east":  East,
	"west":  West,
}

// ParseDirection accepts a heading letter or name, ignoring case
func ParseDirection(s string) (Direction, error) {
	s = strings.TrimSpace(s)
	if d, ok := Directions[strings.ToLower(s)]; ok {
		return d, nil
	}
	d := Direction(strings.ToUpper(s))
	if !d.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
	return d, nil
}

// Valid reports whether d is one of the four headings
func (d Direction) Valid() bool {
	switch d {
	case North, South, East, West:
		return true
	}
	return false
}

// Name returns the lowercase name of the heading
func (d Direction) Name() string {
	for name, dir := range Directions {
		if dir == d {
			return name
		}
	}
	return ""
}

// Coord is an (x, y) grid location
type Coord struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// MarshalJSON encodes the coordinate as [x, y]
func (c Coord) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{c.X, c.Y})
}

// UnmarshalJSON accepts either [x, y] or {"x": .., "y": ..}
func (c *Coord) UnmarshalJSON(data []byte) error {
	var pair []int
	if err := json.Unmarshal(data, &pair); err == nil {
		return c.fromPair(pair)
	}

	type plain Coord
	var obj plain
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("coordinate must be [x, y] or {x, y}: %w", err)
	}
	*c = Coord(obj)
	return nil
}

// MarshalYAML encodes the coordinate as a flow sequence [x, y]
func (c Coord) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range []int{c.X, c.Y} {
		node.Content = append(node.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!int",
			Value: fmt.Sprintf("%d", v),
		})
	}
	return node, nil
}

// UnmarshalYAML accepts either [x, y] or a mapping with x and y keys
func (c *Coord) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.SequenceNode {
		var pair []int
		if err := value.Decode(&pair); err != nil {
			return err
		}
		return c.fromPair(pair)
	}

	type plain Coord
	var obj plain
	if err := value.Decode(&obj); err != nil {
		return fmt.Errorf("coordinate must be [x, y] or {x, y}: %w", err)
	}
	*c = Coord(obj)
	return nil
}

func (c *Coord) fromPair(pair []int) error {
	if len(pair) != 2 {
		return fmt.Errorf("coordinate must have exactly 2 values, got %d", len(pair))
	}
	c.X, c.Y = pair[0], pair[1]
	return nil
}
