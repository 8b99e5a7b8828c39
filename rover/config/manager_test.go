package config

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/wricardo/mcp-training/marsrover/rover/engine"
)

func createTestConfigDir(t *testing.T) string {
	dir, err := os.MkdirTemp("", "mission-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	return dir
}

func createValidConfig() *engine.MissionConfig {
	return &engine.MissionConfig{
		Name:        "Test Mission",
		Description: "Test mission",
		Width:       5,
		Height:      4,
		Obstacles:   []engine.Coord{{X: 2, Y: 2}},
		Rover: engine.RoverConfig{
			Start:     engine.Coord{X: 0, Y: 0},
			Direction: "N",
		},
		Commands: "f,f,r,f",
	}
}

func writeConfigFile(t *testing.T, dir, filename string, config *engine.MissionConfig) {
	format, err := engine.FormatFromPath(filename)
	if err != nil {
		t.Fatalf("Bad test filename %s: %v", filename, err)
	}
	data, err := engine.EncodeMissionConfig(config, format)
	if err != nil {
		t.Fatalf("Failed to encode mission: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0644); err != nil {
		t.Fatalf("Failed to write mission file: %v", err)
	}
}

func TestNewManager(t *testing.T) {
	t.Run("valid directory", func(t *testing.T) {
		dir := createTestConfigDir(t)
		defer os.RemoveAll(dir)

		defaultConfig := createValidConfig()
		defaultConfig.Name = "Default"
		writeConfigFile(t, dir, "default.json", defaultConfig)

		manager, err := NewManager(dir)
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		if manager.GetDefault().Name != "Default" {
			t.Errorf("Expected default mission 'Default', got %q", manager.GetDefault().Name)
		}
		if manager.Dir() != dir {
			t.Errorf("Expected dir %s, got %s", dir, manager.Dir())
		}
	})

	t.Run("non-existent directory", func(t *testing.T) {
		_, err := NewManager("/non/existent/path")
		if err == nil {
			t.Error("Expected error for non-existent directory")
		}
	})

	t.Run("regular file", func(t *testing.T) {
		dir := createTestConfigDir(t)
		defer os.RemoveAll(dir)

		path := filepath.Join(dir, "missions")
		if err := os.WriteFile(path, []byte("not a directory"), 0644); err != nil {
			t.Fatalf("Failed to write file: %v", err)
		}
		if _, err := NewManager(path); err == nil {
			t.Error("Expected error when the mission path is a file")
		}
	})

	t.Run("empty directory uses built-in default", func(t *testing.T) {
		dir := createTestConfigDir(t)
		defer os.RemoveAll(dir)

		manager, err := NewManager(dir)
		if err != nil {
			t.Fatalf("NewManager should succeed without mission files, got %v", err)
		}
		if manager.GetDefault() == nil || manager.GetDefault().Name != "default" {
			t.Errorf("Expected built-in default mission, got %+v", manager.GetDefault())
		}
	})

	t.Run("first valid mission becomes default", func(t *testing.T) {
		dir := createTestConfigDir(t)
		defer os.RemoveAll(dir)

		b := createValidConfig()
		b.Name = "Bravo"
		writeConfigFile(t, dir, "bravo.yaml", b)
		a := createValidConfig()
		a.Name = "Alpha"
		writeConfigFile(t, dir, "alpha.json", a)

		manager, err := NewManager(dir)
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		if manager.GetDefault().Name != "Alpha" {
			t.Errorf("Expected 'Alpha' as default, got %q", manager.GetDefault().Name)
		}
	})
}

func TestLoadConfig(t *testing.T) {
	dir := createTestConfigDir(t)
	defer os.RemoveAll(dir)

	writeConfigFile(t, dir, "json_mission.json", createValidConfig())
	yamlConfig := createValidConfig()
	yamlConfig.Name = "YAML Mission"
	writeConfigFile(t, dir, "yaml_mission.yml", yamlConfig)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"json without extension", "json_mission", "Test Mission"},
		{"json with extension", "json_mission.json", "Test Mission"},
		{"yml without extension", "yaml_mission", "YAML Mission"},
		{"yml with extension", "yaml_mission.yml", "YAML Mission"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			config, err := manager.LoadConfig(test.input)
			if err != nil {
				t.Fatalf("Failed to load %s: %v", test.input, err)
			}
			if config.Name != test.expected {
				t.Errorf("Expected %q, got %q", test.expected, config.Name)
			}
		})
	}

	t.Run("not found", func(t *testing.T) {
		_, err := manager.LoadConfig("missing")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("Expected ErrConfigNotFound, got %v", err)
		}
	})
}

func TestLoadConfig_Invalid(t *testing.T) {
	dir := createTestConfigDir(t)
	defer os.RemoveAll(dir)

	invalid := createValidConfig()
	invalid.Obstacles = []engine.Coord{{X: 9, Y: 9}}
	writeConfigFile(t, dir, "invalid.json", invalid)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	_, err = manager.LoadConfig("invalid")
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{"name":`), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if _, err := manager.LoadConfig("broken"); err == nil {
		t.Error("Expected error for malformed mission file")
	}
}

func TestLoadConfig_Caching(t *testing.T) {
	dir := createTestConfigDir(t)
	defer os.RemoveAll(dir)

	writeConfigFile(t, dir, "cached.json", createValidConfig())

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	first, err := manager.LoadConfig("cached")
	if err != nil {
		t.Fatalf("Failed to load mission: %v", err)
	}

	// Changing the file does not affect the cached copy until refresh
	changed := createValidConfig()
	changed.Name = "Changed"
	writeConfigFile(t, dir, "cached.json", changed)

	second, _ := manager.LoadConfig("cached")
	if first != second {
		t.Error("Expected cached mission to be returned")
	}

	if err := manager.RefreshCache(); err != nil {
		t.Fatalf("RefreshCache failed: %v", err)
	}
	third, _ := manager.LoadConfig("cached")
	if third.Name != "Changed" {
		t.Errorf("Expected reloaded mission 'Changed', got %q", third.Name)
	}
}

func TestListConfigs(t *testing.T) {
	dir := createTestConfigDir(t)
	defer os.RemoveAll(dir)

	writeConfigFile(t, dir, "beta.yaml", createValidConfig())
	writeConfigFile(t, dir, "alpha.json", createValidConfig())

	invalid := createValidConfig()
	invalid.Name = ""
	writeConfigFile(t, dir, "invalid.json", invalid)

	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a mission"), 0644)
	os.Mkdir(filepath.Join(dir, "nested.json"), 0755)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	missions, err := manager.ListConfigs()
	if err != nil {
		t.Fatalf("ListConfigs failed: %v", err)
	}

	if len(missions) != 2 {
		t.Fatalf("Expected 2 valid missions, got %d", len(missions))
	}
	if missions[0].MissionID != "alpha" || missions[1].MissionID != "beta" {
		t.Errorf("Expected [alpha beta], got [%s %s]", missions[0].MissionID, missions[1].MissionID)
	}

	info := missions[1]
	if info.Filename != "beta.yaml" {
		t.Errorf("Expected filename beta.yaml, got %s", info.Filename)
	}
	if info.Width != 5 || info.Height != 4 {
		t.Errorf("Expected 5x4, got %dx%d", info.Width, info.Height)
	}
	if info.Obstacles != 1 {
		t.Errorf("Expected 1 obstacle, got %d", info.Obstacles)
	}
}

func TestLoadConfig_SharedStem(t *testing.T) {
	dir := createTestConfigDir(t)
	defer os.RemoveAll(dir)

	fromJSON := createValidConfig()
	fromJSON.Name = "from-json"
	fromJSON.Width, fromJSON.Height = 3, 3
	fromJSON.Obstacles = []engine.Coord{{X: 1, Y: 1}}
	writeConfigFile(t, dir, "crater.json", fromJSON)

	fromYAML := createValidConfig()
	fromYAML.Name = "from-yaml"
	fromYAML.Width, fromYAML.Height = 5, 5
	writeConfigFile(t, dir, "crater.yaml", fromYAML)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	tests := []struct {
		input    string
		expected string
	}{
		{"crater.json", "from-json"},
		{"crater.yaml", "from-yaml"},
		{"crater", "from-json"},
		{"crater.yaml", "from-yaml"},
	}
	for _, test := range tests {
		config, err := manager.LoadConfig(test.input)
		if err != nil {
			t.Fatalf("Failed to load %s: %v", test.input, err)
		}
		if config.Name != test.expected {
			t.Errorf("LoadConfig(%q): expected %q, got %q", test.input, test.expected, config.Name)
		}
	}

	missions, err := manager.ListConfigs()
	if err != nil {
		t.Fatalf("ListConfigs failed: %v", err)
	}
	if len(missions) != 2 {
		t.Fatalf("Expected 2 missions, got %d", len(missions))
	}

	expected := []struct {
		id, name string
		width    int
	}{
		{"crater.json", "from-json", 3},
		{"crater.yaml", "from-yaml", 5},
	}
	for i, want := range expected {
		got := missions[i]
		if got.MissionID != want.id || got.Name != want.name || got.Width != want.width {
			t.Errorf("Mission %d: expected %s/%s/%d, got %s/%s/%d",
				i, want.id, want.name, want.width, got.MissionID, got.Name, got.Width)
		}
	}
}

func TestSetDefault(t *testing.T) {
	dir := createTestConfigDir(t)
	defer os.RemoveAll(dir)

	other := createValidConfig()
	other.Name = "Other"
	writeConfigFile(t, dir, "other.json", other)

	manager, _ := NewManager(dir)

	if err := manager.SetDefault("other"); err != nil {
		t.Fatalf("SetDefault failed: %v", err)
	}
	if manager.GetDefault().Name != "Other" {
		t.Errorf("Expected default 'Other', got %q", manager.GetDefault().Name)
	}

	if err := manager.SetDefault("missing"); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("Expected ErrConfigNotFound, got %v", err)
	}
}

func TestSaveConfig(t *testing.T) {
	dir := createTestConfigDir(t)
	defer os.RemoveAll(dir)

	manager, _ := NewManager(dir)

	t.Run("json by default", func(t *testing.T) {
		if err := manager.SaveConfig("saved", createValidConfig()); err != nil {
			t.Fatalf("SaveConfig failed: %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "saved.json")); err != nil {
			t.Errorf("Expected saved.json to exist: %v", err)
		}
		loaded, err := engine.LoadMissionConfig(filepath.Join(dir, "saved.json"))
		if err != nil {
			t.Fatalf("Failed to reload saved mission: %v", err)
		}
		if loaded.Name != "Test Mission" {
			t.Errorf("Expected 'Test Mission', got %q", loaded.Name)
		}
	})

	t.Run("yaml by extension", func(t *testing.T) {
		if err := manager.SaveConfig("saved_yaml.yaml", createValidConfig()); err != nil {
			t.Fatalf("SaveConfig failed: %v", err)
		}
		if _, err := engine.LoadMissionConfig(filepath.Join(dir, "saved_yaml.yaml")); err != nil {
			t.Errorf("Failed to reload saved YAML mission: %v", err)
		}
		config, err := manager.LoadConfig("saved_yaml")
		if err != nil || config.Name != "Test Mission" {
			t.Errorf("Expected cached saved mission, got %v, %v", config, err)
		}
	})

	t.Run("invalid mission rejected", func(t *testing.T) {
		invalid := createValidConfig()
		invalid.Width = 0
		if err := manager.SaveConfig("bad", invalid); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "bad.json")); !os.IsNotExist(err) {
			t.Error("Invalid mission must not be written")
		}
	})
}

func TestConcurrentLoad(t *testing.T) {
	dir := createTestConfigDir(t)
	defer os.RemoveAll(dir)

	writeConfigFile(t, dir, "shared.json", createValidConfig())
	manager, _ := NewManager(dir)

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := manager.LoadConfig("shared"); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Concurrent load failed: %v", err)
	}
}

func TestMissionID(t *testing.T) {
	tests := map[string]string{
		"crater.json": "crater",
		"crater.yaml": "crater",
		"crater.YML":  "crater",
		"crater":      "crater",
		"crater.txt":  "crater.txt",
	}
	for input, expected := range tests {
		if got := missionID(input); got != expected {
			t.Errorf("missionID(%q) = %q, expected %q", input, got, expected)
		}
	}
}
