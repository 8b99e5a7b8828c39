package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/wricardo/mcp-training/marsrover/rover/engine"
	"github.com/wricardo/mcp-training/marsrover/rover/service"
)

var (
	ErrConfigNotFound = errors.New("mission not found")
	ErrInvalidConfig  = errors.New("invalid mission")
)

// DefaultMissionName is the file stem picked as default when present
const DefaultMissionName = "default"

var missionExtensions = []string{".json", ".yaml", ".yml"}

// Manager handles mission loading and caching
type Manager struct {
	configDir      string
	defaultMission *engine.MissionConfig
	configs        map[string]*engine.MissionConfig
	mu             sync.RWMutex
}

// NewManager creates a new mission manager over configDir
func NewManager(configDir string) (*Manager, error) {
	// Ensure config directory exists
	info, err := os.Stat(configDir)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("mission directory does not exist: %s", configDir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to access mission directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("mission path is not a directory: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*engine.MissionConfig),
	}

	if err := m.loadDefaultConfig(); err != nil {
		return nil, fmt.Errorf("failed to load default mission: %w", err)
	}

	return m, nil
}

// Dir returns the directory the manager reads from
func (m *Manager) Dir() string {
	return m.configDir
}

// LoadConfig loads a mission by name. The name may carry an extension;
// without one, .json wins over .yaml and .yml. Missions are cached per file.
func (m *Manager) LoadConfig(name string) (*engine.MissionConfig, error) {
	path, err := m.resolvePath(name)
	if err != nil {
		return nil, err
	}
	key := filepath.Base(path)

	m.mu.RLock()
	if config, exists := m.configs[key]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if config, exists := m.configs[key]; exists {
		return config, nil
	}

	config, err := engine.LoadMissionConfig(path)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidMission) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		return nil, fmt.Errorf("failed to load mission file: %w", err)
	}

	m.configs[key] = config
	return config, nil
}

// ListConfigs returns information about all valid missions in the directory
func (m *Manager) ListConfigs() ([]*service.MissionInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read mission directory: %w", err)
	}

	stems := make(map[string]int)
	for _, entry := range entries {
		if !entry.IsDir() && hasMissionExtension(entry.Name()) {
			stems[missionID(entry.Name())]++
		}
	}

	var missions []*service.MissionInfo

	for _, entry := range entries {
		if entry.IsDir() || !hasMissionExtension(entry.Name()) {
			continue
		}

		// Files sharing a stem are only addressable by their full name
		id := missionID(entry.Name())
		if stems[id] > 1 {
			log.Printf("Warning: mission %s shares its name with another file, use %s to load it", id, entry.Name())
			id = entry.Name()
		}

		config, err := m.LoadConfig(entry.Name())
		if err != nil {
			// Skip invalid missions
			log.Printf("Warning: skipping mission %s: %v", entry.Name(), err)
			continue
		}

		width, height := config.Dimensions()
		missions = append(missions, &service.MissionInfo{
			Filename:    entry.Name(),
			MissionID:   id,
			Name:        config.Name,
			Description: config.Description,
			Width:       width,
			Height:      height,
			Obstacles:   len(config.AllObstacles()),
		})
	}

	sort.Slice(missions, func(i, j int) bool {
		return missions[i].MissionID < missions[j].MissionID
	})

	return missions, nil
}

// GetDefault returns the default mission
func (m *Manager) GetDefault() *engine.MissionConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultMission
}

// SetDefault sets the default mission by name
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultMission = config
	return nil
}

// RefreshCache drops cached missions and reselects the default
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.configs = make(map[string]*engine.MissionConfig)
	m.mu.Unlock()

	return m.loadDefaultConfig()
}

// SaveConfig validates and writes a mission. The format follows the name's
// extension and defaults to JSON.
func (m *Manager) SaveConfig(name string, config *engine.MissionConfig) error {
	if err := engine.ValidateMissionConfig(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	filename := name
	if !hasMissionExtension(filename) {
		filename = name + ".json"
	}

	format, err := engine.FormatFromPath(filename)
	if err != nil {
		return err
	}

	data, err := engine.EncodeMissionConfig(config, format)
	if err != nil {
		return fmt.Errorf("failed to encode mission: %w", err)
	}

	configPath := filepath.Join(m.configDir, filename)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write mission file: %w", err)
	}

	m.mu.Lock()
	m.configs[filename] = config
	m.mu.Unlock()

	return nil
}

// loadDefaultConfig picks "default", then the first valid mission, then the built-in one
func (m *Manager) loadDefaultConfig() error {
	config, err := m.LoadConfig(DefaultMissionName)
	if err != nil {
		missions, listErr := m.ListConfigs()
		if listErr != nil || len(missions) == 0 {
			m.setDefault(engine.DefaultMission())
			return nil
		}

		config, err = m.LoadConfig(missions[0].Filename)
		if err != nil {
			m.setDefault(engine.DefaultMission())
			return nil
		}
	}

	m.setDefault(config)
	return nil
}

func (m *Manager) setDefault(config *engine.MissionConfig) {
	m.mu.Lock()
	m.defaultMission = config
	m.mu.Unlock()
}

// resolvePath finds the file for a mission name, trying each known extension
func (m *Manager) resolvePath(name string) (string, error) {
	if hasMissionExtension(name) {
		path := filepath.Join(m.configDir, name)
		if _, err := os.Stat(path); err != nil {
			return "", ErrConfigNotFound
		}
		return path, nil
	}

	for _, ext := range missionExtensions {
		path := filepath.Join(m.configDir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", ErrConfigNotFound
}

// missionID strips the extension from a file name
func missionID(name string) string {
	for _, ext := range missionExtensions {
		if strings.HasSuffix(strings.ToLower(name), ext) {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

func hasMissionExtension(name string) bool {
	return missionID(name) != name
}
