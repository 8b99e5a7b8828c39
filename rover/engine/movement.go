package engine

var leftOf = map[Direction]Direction{
	North: West,
	West:  South,
	South: East,
	East:  North,
}

var rightOf = map[Direction]Direction{
	North: East,
	East:  South,
	South: West,
	West:  North,
}

// Offset returns the unit step for the heading. North is +y, East is +x.
func (d Direction) Offset() (dx, dy int) {
	switch d {
	case North:
		return 0, 1
	case South:
		return 0, -1
	case East:
		return 1, 0
	case West:
		return -1, 0
	}
	return 0, 0
}

// Left returns the heading after a 90 degree left turn
func (d Direction) Left() Direction {
	return leftOf[d]
}

// Right returns the heading after a 90 degree right turn
func (d Direction) Right() Direction {
	return rightOf[d]
}

// TurnLeft rotates the rover counter-clockwise. It always succeeds.
func (r *Rover) TurnLeft() bool {
	r.direction = r.direction.Left()
	return true
}

// TurnRight rotates the rover clockwise. It always succeeds.
func (r *Rover) TurnRight() bool {
	r.direction = r.direction.Right()
	return true
}

// MoveForward steps one cell along the heading
func (r *Rover) MoveForward() bool {
	target := r.Step(Forward)
	return r.MoveTo(target.X, target.Y)
}

// MoveBackward steps one cell against the heading
func (r *Rover) MoveBackward() bool {
	target := r.Step(Backward)
	return r.MoveTo(target.X, target.Y)
}

// MoveTo wraps (x, y) onto the terrain and moves there if the cell is clear.
// On a blocked cell the rover is left untouched and false is returned.
func (r *Rover) MoveTo(x, y int) bool {
	target := r.wrap(x, y)
	if !r.CheckClear(target) {
		return false
	}
	r.x, r.y = target.X, target.Y
	return true
}

// Step returns the cell a move command aims at before edge wrapping, which
// may lie one cell off the grid. Turns stay on the current cell.
func (r *Rover) Step(cmd Command) Coord {
	if !cmd.IsMove() {
		return r.Position()
	}
	dx, dy := r.direction.Offset()
	if cmd == Backward {
		dx, dy = -dx, -dy
	}
	return Coord{X: r.x + dx, Y: r.y + dy}
}

// Destination returns the wrapped cell a move command would try to enter.
// Turns have no destination.
func (r *Rover) Destination(cmd Command) (Coord, bool) {
	if !cmd.IsMove() {
		return Coord{}, false
	}
	step := r.Step(cmd)
	return r.wrap(step.X, step.Y), true
}

func (r *Rover) wrap(x, y int) Coord {
	return Coord{
		X: wrapAxis(x, r.terrain.XMax()),
		Y: wrapAxis(y, r.terrain.YMax()),
	}
}

// wrapAxis sends a coordinate below zero to limit and one past limit to zero.
// It is not a modulo: any overshoot lands on the opposite edge.
func wrapAxis(v, limit int) int {
	if v < 0 {
		return limit
	}
	if v > limit {
		return 0
	}
	return v
}
