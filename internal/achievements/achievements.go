// Package achievements tracks long-running goals across encounters. The
// manager is the combat resolver's Recorder, so progress comes straight from
// fights without the resolver knowing what an achievement is.
package achievements

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"dungeoncrawl/internal/combat"
	"dungeoncrawl/internal/config"
)

var ErrUnknownAchievement = errors.New("unknown achievement")

// Type is what an achievement counts
type Type string

const (
	TypeKill    Type = "kill"    // enemies of TargetMonster, or any enemy when empty
	TypeBoss    Type = "boss"    // boss kills
	TypeDamage  Type = "damage"  // total damage dealt
	TypeVictory Type = "victory" // encounters won
	TypeGold    Type = "gold"    // gold collected over the run
)

// Definition is one achievement as written in achievements.yaml
type Definition struct {
	Name          string `yaml:"name" validate:"required"`
	Description   string `yaml:"description"`
	Type          Type   `yaml:"type" validate:"oneof=kill boss damage victory gold"`
	TargetMonster string `yaml:"target_monster"`
	TargetCount   int    `yaml:"target_count" validate:"gt=0"`
}

type Config struct {
	Achievements map[string]*Definition `yaml:"achievements" validate:"dive,required"`
}

// TargetMonsters maps achievement IDs to the monster key they count, for
// cross-checking against the monster catalog
func (c *Config) TargetMonsters() map[string]string {
	out := make(map[string]string)
	for id, def := range c.Achievements {
		if def.TargetMonster != "" {
			out[id] = def.TargetMonster
		}
	}
	return out
}

// Achievement is a definition plus the progress made towards it
type Achievement struct {
	ID         string
	Definition *Definition
	Progress   int
	Unlocked   bool
}

// Manager records combat events and unlocks achievements. It is safe for
// concurrent use so batch simulations can share one.
type Manager struct {
	config   *Config
	progress map[string]*Achievement
	fresh    []*Achievement
	mu       sync.RWMutex
}

// LoadConfig loads achievement definitions from a YAML file on fs
func LoadConfig(fs afero.Fs, filename string) (*Config, error) {
	data, err := afero.ReadFile(fs, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read achievement config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse achievement config: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid achievement config %s: %w", filename, err)
	}
	return &cfg, nil
}

// MustLoadConfig loads the achievements and panics on error
func MustLoadConfig(fs afero.Fs, filename string) *Config {
	cfg, err := LoadConfig(fs, filename)
	if err != nil {
		panic("Failed to load achievements: " + err.Error())
	}
	return cfg
}

// NewManager starts tracking every configured achievement from zero
func NewManager(cfg *Config) *Manager {
	if cfg == nil {
		cfg = &Config{}
	}
	m := &Manager{config: cfg}
	m.reset()
	return m
}

// Reset clears all progress
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset()
}

func (m *Manager) reset() {
	m.progress = make(map[string]*Achievement, len(m.config.Achievements))
	for id, def := range m.config.Achievements {
		m.progress[id] = &Achievement{ID: id, Definition: def}
	}
	m.fresh = nil
}

// EnemyDefeated counts a kill towards kill and boss achievements
func (m *Manager) EnemyDefeated(enemyKey string, boss bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.progress {
		switch a.Definition.Type {
		case TypeKill:
			if a.Definition.TargetMonster != "" && a.Definition.TargetMonster != enemyKey {
				continue
			}
		case TypeBoss:
			if !boss {
				continue
			}
		default:
			continue
		}
		m.advance(a, a.Progress+1)
	}
}

// DamageDealt adds to damage achievements
func (m *Manager) DamageDealt(amount int) {
	if amount <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.progress {
		if a.Definition.Type == TypeDamage {
			m.advance(a, a.Progress+amount)
		}
	}
}

// EncounterFinished counts victories
func (m *Manager) EncounterFinished(result combat.Result, _ int) {
	if result != combat.Won {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.progress {
		if a.Definition.Type == TypeVictory {
			m.advance(a, a.Progress+1)
		}
	}
}

// RecordGold reports the run's gold total. Progress never goes backwards.
func (m *Manager) RecordGold(total int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.progress {
		if a.Definition.Type == TypeGold && total > a.Progress {
			m.advance(a, total)
		}
	}
}

// advance must be called with the lock held
func (m *Manager) advance(a *Achievement, progress int) {
	if a.Unlocked {
		return
	}
	a.Progress = progress
	if a.Progress >= a.Definition.TargetCount {
		a.Progress = a.Definition.TargetCount
		a.Unlocked = true
		m.fresh = append(m.fresh, a)
	}
}

// TakeUnlocked returns achievements unlocked since the last call
func (m *Manager) TakeUnlocked() []*Achievement {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := m.fresh
	m.fresh = nil
	sortByID(out)
	return out
}

// GetAchievement returns one achievement by ID
func (m *Manager) GetAchievement(id string) (*Achievement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.progress[id]
	if !ok {
		return nil, fmt.Errorf("%q: %w", id, ErrUnknownAchievement)
	}
	return a, nil
}

// GetAll returns every achievement sorted by ID
func (m *Manager) GetAll() []*Achievement {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Achievement, 0, len(m.progress))
	for _, a := range m.progress {
		out = append(out, a)
	}
	sortByID(out)
	return out
}

// GetUnlocked returns the unlocked achievements sorted by ID
func (m *Manager) GetUnlocked() []*Achievement {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*Achievement
	for _, a := range m.progress {
		if a.Unlocked {
			out = append(out, a)
		}
	}
	sortByID(out)
	return out
}

func sortByID(list []*Achievement) {
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
}

// GetProgressString returns a formatted progress string
func (a *Achievement) GetProgressString() string {
	d := a.Definition
	switch d.Type {
	case TypeKill:
		if d.TargetMonster == "" {
			return fmt.Sprintf("%d/%d enemies defeated", a.Progress, d.TargetCount)
		}
		return fmt.Sprintf("%d/%d %s defeated", a.Progress, d.TargetCount, d.TargetMonster)
	case TypeBoss:
		return fmt.Sprintf("%d/%d bosses defeated", a.Progress, d.TargetCount)
	case TypeDamage:
		return fmt.Sprintf("%d/%d damage dealt", a.Progress, d.TargetCount)
	case TypeVictory:
		return fmt.Sprintf("%d/%d victories", a.Progress, d.TargetCount)
	case TypeGold:
		return fmt.Sprintf("%d/%d gold collected", a.Progress, d.TargetCount)
	default:
		return ""
	}
}

// GetStatusString returns a human-readable status
func (a *Achievement) GetStatusString() string {
	if a.Unlocked {
		return "Unlocked"
	}
	return "In Progress"
}
