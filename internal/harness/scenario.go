package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/unsei/internal/ir"
)

// Scenario is a regression scenario: a list of dates with the values the
// engine must reproduce, plus properties checked over date ranges.
type Scenario struct {
	// Name uniquely identifies this scenario. It names the golden file.
	Name string `yaml:"name" json:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description" json:"description"`

	// Cases are the dates to compute, in file order.
	Cases []Case `yaml:"cases" json:"cases"`

	// Properties are checked over every date of their range.
	Properties []Property `yaml:"properties,omitempty" json:"properties,omitempty"`
}

// Case is one date with its expected record fields.
type Case struct {
	Date string `yaml:"date" json:"date"`

	// Expect is matched against the computed record as a subset: only
	// the listed keys are compared. Keys are record field names
	// (kin, glyph, sukuyo, lunar_month, leap_month, ...).
	Expect map[string]any `yaml:"expect" json:"expect"`
}

// Property is a check evaluated on every date in [From, To].
type Property struct {
	Type string `yaml:"type" json:"type"`
	From string `yaml:"from" json:"from"`
	To   string `yaml:"to" json:"to"`
}

// Property type constants.
const (
	PropLunarDayMonotonic = "lunar_day_monotonic"
	PropDeterminism       = "determinism"
	PropRange             = "range"
)

// maxPropertyDays bounds a property range; every date in it is computed.
const maxPropertyDays = 366 * 10

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or fails schema validation.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict decoding catches typos like "expects:" vs "expect:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	if err := ValidateSchema(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks what the CUE schema cannot: that dates exist
// and ranges are ordered.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if len(s.Cases) == 0 && len(s.Properties) == 0 {
		return fmt.Errorf("cases or properties are required")
	}

	seen := make(map[string]bool, len(s.Cases))
	for i, c := range s.Cases {
		if _, err := ir.ParseCalendarDate(c.Date); err != nil {
			return fmt.Errorf("cases[%d]: %w", i, err)
		}
		if seen[c.Date] {
			return fmt.Errorf("cases[%d]: duplicate date %s", i, c.Date)
		}
		seen[c.Date] = true
	}

	for i, p := range s.Properties {
		from, to, err := p.span()
		if err != nil {
			return fmt.Errorf("properties[%d]: %w", i, err)
		}
		if to.Compare(from) < 0 {
			return fmt.Errorf("properties[%d]: to %s is before from %s", i, to, from)
		}
		if from.DaysUntil(to) > maxPropertyDays {
			return fmt.Errorf("properties[%d]: range exceeds %d days", i, maxPropertyDays)
		}
	}

	return nil
}

func (p Property) span() (ir.CalendarDate, ir.CalendarDate, error) {
	from, err := ir.ParseCalendarDate(p.From)
	if err != nil {
		return ir.CalendarDate{}, ir.CalendarDate{}, fmt.Errorf("from: %w", err)
	}
	to, err := ir.ParseCalendarDate(p.To)
	if err != nil {
		return ir.CalendarDate{}, ir.CalendarDate{}, fmt.Errorf("to: %w", err)
	}
	return from, to, nil
}

// ScenarioFiles returns the .yaml and .yml files directly inside dir,
// sorted by name.
func ScenarioFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read scenario directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".yaml" || ext == ".yml" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
