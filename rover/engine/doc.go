// Package engine provides the core simulation for the Mars rover.
//
// The engine package implements:
//   - A fixed-size terrain grid with static obstacles
//   - Rover heading and position with toroidal wrap-around
//   - Single-step movement and turn commands
//   - Batch execution of comma-separated command strings
//   - Mission configuration loading and validation
//
// Core Types:
//
// Terrain owns the occupancy grid, indexed [y][x]. Rover holds a position,
// a heading and a shared reference to a Terrain. MissionConfig describes a
// terrain, a rover start and a default command string, loaded from JSON or
// YAML files.
//
// Usage:
//
//	terrain, err := engine.NewTerrain(3, 3)
//	if err != nil {
//		log.Fatal(err)
//	}
//	terrain.AddObstacle(engine.Coord{X: 1, Y: 1})
//
//	rover, err := engine.NewRover(terrain, engine.Coord{X: 0, Y: 0}, engine.East)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	succeeded := rover.RunCommands("f,r,f,f") // [f r f]
//
// Movement Rules:
//
// North is +y and East is +x. A move that steps one cell past an edge
// re-enters on the opposite edge. A move onto an obstacle is rejected and
// leaves the rover untouched; batch execution carries on with the next
// command.
package engine
