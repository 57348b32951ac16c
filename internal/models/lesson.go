// lesson.go
package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Lesson is one roleplay scenario from the catalog YAML. The AI conducting
// the roleplay lives outside this service; we only need the metadata to
// validate completions and award XP.
type Lesson struct {
	ID         string   `yaml:"id" json:"id"`
	Title      string   `yaml:"title" json:"title"`
	Persona    string   `yaml:"persona" json:"persona"`
	Scenario   string   `yaml:"scenario" json:"scenario"`
	Difficulty string   `yaml:"difficulty" json:"difficulty"`
	BaseXP     int      `yaml:"base_xp" json:"baseXp"`
	Objectives []string `yaml:"objectives" json:"objectives"`
}

// Catalog holds every lesson available to reps.
type Catalog struct {
	Lessons []Lesson `yaml:"lessons"`
}

// LoadCatalog reads and parses the lessons YAML file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lesson catalog: %w", err)
	}

	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to unmarshal lesson catalog YAML: %w", err)
	}

	return &catalog, nil
}

// Find returns the lesson with the given ID, if present.
func (c *Catalog) Find(id string) (Lesson, bool) {
	for _, lesson := range c.Lessons {
		if lesson.ID == id {
			return lesson, true
		}
	}
	return Lesson{}, false
}
