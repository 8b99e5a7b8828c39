package service

import (
	"context"

	"github.com/wricardo/mcp-training/marsrover/rover/engine"
)

// MissionService defines all mission-related operations
type MissionService interface {
	// Catalogue
	ListMissions(ctx context.Context) ([]*MissionInfo, error)
	LoadMission(ctx context.Context, name string) (*engine.MissionConfig, error)

	// Execution
	Run(ctx context.Context, name, commands string) (*RunResult, error)
	RunConfig(ctx context.Context, config *engine.MissionConfig, commands string) (*RunResult, error)
}

// ConfigManager handles mission loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.MissionConfig, error)
	ListConfigs() ([]*MissionInfo, error)
	GetDefault() *engine.MissionConfig
}
