// Package config provides mission catalogue management for the rover simulator.
//
// The config package handles:
//   - Loading mission files (JSON or YAML) from a directory
//   - Mission validation before anything is cached
//   - Default mission selection
//   - Mission discovery and listing
//
// Mission Format:
//
// Each file defines a terrain (width/height plus an obstacle list, or a
// layout drawn with '.' and '#'), the rover start and heading, and a default
// command string:
//
//	name: crater
//	width: 3
//	height: 3
//	obstacles: [[1, 1]]
//	rover: {start: [0, 0], direction: E}
//	commands: "f,r,f,f"
//
// Usage:
//
//	manager, err := config.NewManager("missions")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	mission, err := manager.LoadConfig("crater")
//	missions, err := manager.ListConfigs()
//	fallback := manager.GetDefault()
//
// When the directory holds no "default" mission the first valid file is used,
// and with no valid files at all the built-in 3x3 crater mission is the default.
package config
