// Package plan turns a static seating-plan description into the default
// snapshot used when no persisted state exists yet.
package plan

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/mmynk/seatsync/internal/models"
)

//go:embed default.yaml
var defaultPlan []byte

var (
	ErrNoTables       = errors.New("plan has no tables")
	ErrMissingTableID = errors.New("table id required")
	ErrDuplicateTable = errors.New("duplicate table id")
)

// TableDef describes one table in a seating plan.
type TableDef struct {
	ID       string   `yaml:"id"`
	Category string   `yaml:"category"`
	Note     string   `yaml:"note,omitempty"`
	Guests   []string `yaml:"guests"`
}

// Plan is an ordered list of table definitions.
type Plan struct {
	Tables []TableDef `yaml:"tables"`
}

// Parse decodes and validates a YAML seating plan.
func Parse(data []byte) (Plan, error) {
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Plan{}, fmt.Errorf("failed to decode plan: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Plan{}, err
	}
	return p, nil
}

// LoadFile reads and parses the plan at path.
func LoadFile(path string) (Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, fmt.Errorf("failed to read plan: %w", err)
	}
	return Parse(data)
}

// Default returns the plan embedded in the binary.
func Default() Plan {
	p, err := Parse(defaultPlan)
	if err != nil {
		panic(fmt.Sprintf("embedded plan is invalid: %v", err))
	}
	return p
}

// Load returns the plan at path, or the embedded plan when path is empty.
func Load(path string) (Plan, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// Validate checks that the plan has tables and that table IDs are present
// and unique.
func (p Plan) Validate() error {
	if len(p.Tables) == 0 {
		return ErrNoTables
	}
	seen := make(map[string]bool, len(p.Tables))
	for i, t := range p.Tables {
		id := strings.TrimSpace(t.ID)
		if id == "" {
			return fmt.Errorf("table %d: %w", i+1, ErrMissingTableID)
		}
		if seen[id] {
			return fmt.Errorf("%w: %q", ErrDuplicateTable, id)
		}
		seen[id] = true
	}
	return nil
}

// GuestCount returns the number of guest names across all tables.
func (p Plan) GuestCount() int {
	n := 0
	for _, t := range p.Tables {
		n += len(t.Guests)
	}
	return n
}

// Snapshot builds the default snapshot, one guest per name.
//
// Guest IDs have the form <table>-<position>-<salt>. The salt contains no
// dash and the position is numeric, so the ID splits back unambiguously and
// is unique across the whole snapshot for a given salt.
func (p Plan) Snapshot(salt string) models.Snapshot {
	tables := make([]models.Table, len(p.Tables))
	for i, def := range p.Tables {
		id := strings.TrimSpace(def.ID)
		guests := make([]models.Guest, len(def.Guests))
		for j, name := range def.Guests {
			guests[j] = models.Guest{
				ID:   fmt.Sprintf("%s-%d-%s", id, j, salt),
				Name: name,
			}
		}
		tables[i] = models.Table{
			ID:       id,
			Category: def.Category,
			Note:     def.Note,
			Guests:   guests,
		}
	}
	return models.Snapshot{Tables: tables}
}

// NewSalt returns a random dash-free salt for Snapshot.
func NewSalt() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
