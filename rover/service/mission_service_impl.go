package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/wricardo/mcp-training/marsrover/rover/engine"
	"github.com/wricardo/mcp-training/marsrover/telemetry"
)

// missionServiceImpl implements the MissionService interface
type missionServiceImpl struct {
	configs ConfigManager
	mu      sync.Mutex
}

// NewMissionService creates a new mission service instance
func NewMissionService(configs ConfigManager) MissionService {
	return &missionServiceImpl{
		configs: configs,
	}
}

// ListMissions returns the missions available in the catalogue
func (s *missionServiceImpl) ListMissions(ctx context.Context) ([]*MissionInfo, error) {
	missions, err := s.configs.ListConfigs()
	if err != nil {
		return nil, fmt.Errorf("failed to list missions: %w", err)
	}
	return missions, nil
}

// LoadMission loads a mission by name, or the default mission for an empty name
func (s *missionServiceImpl) LoadMission(ctx context.Context, name string) (*engine.MissionConfig, error) {
	if name == "" {
		config := s.configs.GetDefault()
		if config == nil {
			return nil, fmt.Errorf("no default mission configured")
		}
		return config, nil
	}

	config, err := s.configs.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load mission %s: %w", name, err)
	}
	return config, nil
}

// Run executes commands against a fresh copy of the named mission
func (s *missionServiceImpl) Run(ctx context.Context, name, commands string) (*RunResult, error) {
	config, err := s.LoadMission(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.RunConfig(ctx, config, commands)
}

// RunConfig executes commands against a fresh copy of config. An empty
// command string runs the mission's own commands.
func (s *missionServiceImpl) RunConfig(ctx context.Context, config *engine.MissionConfig, commands string) (*RunResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tracer := telemetry.Tracer("service")
	_, span := tracer.Start(ctx, "mission.run")
	defer span.End()

	_, rover, err := config.NewMission()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "mission setup failed")
		return nil, fmt.Errorf("failed to start mission: %w", err)
	}

	if commands == "" {
		commands = config.Commands
	}

	startedAt := time.Now()
	requested, ignored := engine.SplitCommands(commands)

	result := &RunResult{
		ID:           uuid.NewString(),
		Mission:      config.Name,
		StartedAt:    startedAt,
		Commands:     commands,
		Requested:    requested,
		Ignored:      ignored,
		Succeeded:    make([]engine.Command, 0, len(requested)),
		Steps:        make([]StepInfo, 0, len(requested)),
		StartPos:     rover.Position(),
		StartHeading: rover.Direction(),
	}

	for i, cmd := range requested {
		from := rover.Position()
		heading := rover.Direction()
		step := rover.Step(cmd)
		target, _ := rover.Destination(cmd)

		success := rover.Execute(cmd)

		result.Steps = append(result.Steps, StepInfo{
			Idx:           i + 1,
			Command:       cmd,
			From:          from,
			To:            rover.Position(),
			HeadingBefore: heading,
			HeadingAfter:  rover.Direction(),
			Success:       success,
		})

		if success {
			result.Succeeded = append(result.Succeeded, cmd)
			continue
		}

		result.Blocked++
		if result.FirstBlocked == nil && cmd.IsMove() {
			result.FirstBlocked = &AttemptInfo{
				StepIdx: i + 1,
				Command: cmd,
				X:       target.X,
				Y:       target.Y,
				Wrapped: target != step,
			}
		}
	}

	result.EndPos = rover.Position()
	result.EndHeading = rover.Direction()
	result.Map = engine.RenderMap(rover.Terrain(), rover)
	result.DurationMS = float64(time.Since(startedAt).Microseconds()) / 1000.0

	span.SetAttributes(
		attribute.String("run.id", result.ID),
		attribute.String("mission.name", config.Name),
		attribute.Int("commands.requested", len(requested)),
		attribute.Int("commands.ignored", len(ignored)),
		attribute.Int("commands.succeeded", len(result.Succeeded)),
		attribute.Int("commands.blocked", result.Blocked),
		attribute.String("rover.end", result.EndPos.String()),
		attribute.String("rover.heading", string(result.EndHeading)),
	)

	return result, nil
}
