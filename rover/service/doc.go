// Package service provides the application layer for running rover missions.
//
// The service package defines:
//   - MissionService: the contract used by the CLI and tools
//   - ConfigManager: the mission catalogue the service reads from
//   - Result types that describe a run step by step
//
// A run builds a fresh terrain and rover from a mission, executes a command
// string (the mission's own when none is given) and reports the commands that
// succeeded together with a per-step trace, the first blocked move and the
// final map. Each run is traced with an OpenTelemetry span.
//
// Usage:
//
//	svc := service.NewMissionService(manager)
//	result, err := svc.Run(ctx, "crater", "f,r,f,f")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(result.Succeeded, result.EndPos)
package service
