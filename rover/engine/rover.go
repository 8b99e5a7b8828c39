package engine

import (
	"fmt"
	"strings"
)

// Rover is a single vehicle on a shared Terrain. It never owns the terrain;
// several rovers may point at the same one.
type Rover struct {
	terrain   *Terrain
	x         int
	y         int
	direction Direction
}

// NewRover places a rover at location facing d. The location is not checked
// against obstacles.
func NewRover(terrain *Terrain, location Coord, d Direction) (*Rover, error) {
	if terrain == nil {
		return nil, ErrNilTerrain
	}
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDirection, string(d))
	}
	if !terrain.InBounds(location) {
		return nil, fmt.Errorf("%w: rover at %s on %dx%d terrain",
			ErrOutOfBounds, location, terrain.Width(), terrain.Height())
	}

	return &Rover{
		terrain:   terrain,
		x:         location.X,
		y:         location.Y,
		direction: d,
	}, nil
}

// Terrain returns the terrain the rover drives on
func (r *Rover) Terrain() *Terrain {
	return r.terrain
}

// Position returns the current location
func (r *Rover) Position() Coord {
	return Coord{X: r.x, Y: r.y}
}

// X returns the current column
func (r *Rover) X() int {
	return r.x
}

// Y returns the current row
func (r *Rover) Y() int {
	return r.y
}

// Direction returns the current heading
func (r *Rover) Direction() Direction {
	return r.direction
}

// CheckClear reports whether the terrain cell at c is free
func (r *Rover) CheckClear(c Coord) bool {
	return r.terrain.IsClear(c)
}

// ParseCommands splits a comma-separated string and keeps only recognized
// commands, in order. Anything else is dropped without error.
func ParseCommands(s string) []Command {
	commands, _ := SplitCommands(s)
	return commands
}

// SplitCommands is ParseCommands that also returns the non-empty tokens it dropped
func SplitCommands(s string) ([]Command, []string) {
	tokens := strings.Split(s, CommandSeparator)
	commands := make([]Command, 0, len(tokens))
	var ignored []string

	for _, token := range tokens {
		cmd := Command(token)
		if cmd.Valid() {
			commands = append(commands, cmd)
			continue
		}
		if token != "" {
			ignored = append(ignored, token)
		}
	}

	return commands, ignored
}

// Execute runs a single command and reports whether it succeeded
func (r *Rover) Execute(cmd Command) bool {
	switch cmd {
	case Forward:
		return r.MoveForward()
	case Backward:
		return r.MoveBackward()
	case Left:
		return r.TurnLeft()
	case Right:
		return r.TurnRight()
	default:
		return false
	}
}

// RunCommands parses s and executes each command in order. It returns the
// commands that succeeded; blocked moves are left out but do not stop the run.
func (r *Rover) RunCommands(s string) []Command {
	return r.RunSequence(ParseCommands(s))
}

// RunSequence executes already-parsed commands and returns those that succeeded
func (r *Rover) RunSequence(commands []Command) []Command {
	succeeded := make([]Command, 0, len(commands))
	for _, cmd := range commands {
		if r.Execute(cmd) {
			succeeded = append(succeeded, cmd)
		}
	}
	return succeeded
}
