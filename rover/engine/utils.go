package engine

// RoverGlyph returns the map symbol for a rover heading
func RoverGlyph(d Direction) rune {
	switch d {
	case North:
		return '^'
	case South:
		return 'v'
	case East:
		return '>'
	case West:
		return '<'
	}
	return '?'
}

// RenderMap draws the terrain north to south with the rover overlaid.
// The rover may be nil.
func RenderMap(t *Terrain, r *Rover) []string {
	rows := make([]string, 0, t.Height())
	for y := t.YMax(); y >= 0; y-- {
		row := make([]rune, t.Width())
		for x := range row {
			if t.IsClear(Coord{X: x, Y: y}) {
				row[x] = ClearCell
			} else {
				row[x] = ObstacleCell
			}
		}
		if r != nil && r.Y() == y {
			row[r.X()] = RoverGlyph(r.Direction())
		}
		rows = append(rows, string(row))
	}
	return rows
}

// CountObstacles counts blocked cells on the terrain
func CountObstacles(t *Terrain) int {
	return len(t.Obstacles())
}

// ObstacleDensity returns the blocked fraction of the terrain
func ObstacleDensity(t *Terrain) float64 {
	return float64(CountObstacles(t)) / float64(t.Width()*t.Height())
}

// Neighbors returns the four wrapped cells a rover at c could step into,
// in N, E, S, W order
func Neighbors(t *Terrain, c Coord) []Coord {
	neighbors := make([]Coord, 0, 4)
	for _, d := range []Direction{North, East, South, West} {
		dx, dy := d.Offset()
		neighbors = append(neighbors, Coord{
			X: wrapAxis(c.X+dx, t.XMax()),
			Y: wrapAxis(c.Y+dy, t.YMax()),
		})
	}
	return neighbors
}

// IsEnclosed reports whether every cell reachable in one step from c is blocked
func IsEnclosed(t *Terrain, c Coord) bool {
	for _, n := range Neighbors(t, c) {
		if t.IsClear(n) {
			return false
		}
	}
	return true
}
