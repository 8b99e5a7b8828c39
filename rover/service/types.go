package service

import (
	"time"

	"github.com/wricardo/mcp-training/marsrover/rover/engine"
)

// MissionInfo provides information about a mission file
type MissionInfo struct {
	Filename    string `json:"filename"`
	MissionID   string `json:"mission_id"` // The identifier to pass to Run
	Name        string `json:"name"`       // Display name
	Description string `json:"description"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Obstacles   int    `json:"obstacles"`
}

// RunResult contains the outcome of executing a command string
type RunResult struct {
	ID         string    `json:"id"`
	Mission    string    `json:"mission"`
	StartedAt  time.Time `json:"started_at"`
	Commands   string    `json:"commands"`
	DurationMS float64   `json:"duration_ms"`

	// Parsed input
	Requested []engine.Command `json:"requested"`
	Ignored   []string         `json:"ignored,omitempty"` // Unrecognized tokens dropped by the parser

	// Outcome
	Succeeded []engine.Command `json:"succeeded"`
	Blocked   int              `json:"blocked"`

	// Start/end snapshot
	StartPos     engine.Coord     `json:"start_pos"`
	EndPos       engine.Coord     `json:"end_pos"`
	StartHeading engine.Direction `json:"start_heading"`
	EndHeading   engine.Direction `json:"end_heading"`

	// Per-step trace
	Steps []StepInfo `json:"steps"`

	// Failure diagnostics
	FirstBlocked *AttemptInfo `json:"first_blocked,omitempty"`

	// Final terrain with the rover drawn on it, north at the top
	Map []string `json:"map"`
}

// StepInfo is a compact record for each executed command
type StepInfo struct {
	Idx           int              `json:"idx"`
	Command       engine.Command   `json:"command"`
	From          engine.Coord     `json:"from"`
	To            engine.Coord     `json:"to"`
	HeadingBefore engine.Direction `json:"heading_before"`
	HeadingAfter  engine.Direction `json:"heading_after"`
	Success       bool             `json:"success"`
}

// AttemptInfo details a move that was rejected
type AttemptInfo struct {
	StepIdx int            `json:"step_idx"`
	Command engine.Command `json:"command"`
	X       int            `json:"x"`
	Y       int            `json:"y"`
	Wrapped bool           `json:"wrapped"` // Target crossed an edge
}
