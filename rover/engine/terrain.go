package engine

import "fmt"

// Terrain is a fixed-size occupancy grid. Cells are stored as grid[y][x].
type Terrain struct {
	width  int
	height int
	grid   [][]bool
}

// NewTerrain creates a width x height terrain with every cell clear
func NewTerrain(width, height int) (*Terrain, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	grid := make([][]bool, height)
	for y := range grid {
		grid[y] = make([]bool, width)
	}

	return &Terrain{
		width:  width,
		height: height,
		grid:   grid,
	}, nil
}

// Width returns the number of columns
func (t *Terrain) Width() int {
	return t.width
}

// Height returns the number of rows
func (t *Terrain) Height() int {
	return t.height
}

// XMax returns the largest valid x index
func (t *Terrain) XMax() int {
	return t.width - 1
}

// YMax returns the largest valid y index
func (t *Terrain) YMax() int {
	return t.height - 1
}

// InBounds reports whether c lies on the grid
func (t *Terrain) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < t.width && c.Y >= 0 && c.Y < t.height
}

// AddObstacle marks the cell at c as blocked. Marking a blocked cell again is a no-op.
func (t *Terrain) AddObstacle(c Coord) error {
	if !t.InBounds(c) {
		return fmt.Errorf("%w: obstacle at %s on %dx%d terrain", ErrOutOfBounds, c, t.width, t.height)
	}
	t.grid[c.Y][c.X] = true
	return nil
}

// IsClear reports whether c is on the grid and free of obstacles
func (t *Terrain) IsClear(c Coord) bool {
	if !t.InBounds(c) {
		return false
	}
	return !t.grid[c.Y][c.X]
}

// Obstacles lists blocked cells scanning rows from y=0 upward
func (t *Terrain) Obstacles() []Coord {
	var obstacles []Coord
	for y, row := range t.grid {
		for x, blocked := range row {
			if blocked {
				obstacles = append(obstacles, Coord{X: x, Y: y})
			}
		}
	}
	return obstacles
}

// Cells returns a copy of the grid as 0 (clear) / 1 (obstacle), indexed [y][x]
func (t *Terrain) Cells() [][]int {
	cells := make([][]int, t.height)
	for y, row := range t.grid {
		cells[y] = make([]int, t.width)
		for x, blocked := range row {
			if blocked {
				cells[y][x] = 1
			}
		}
	}
	return cells
}
