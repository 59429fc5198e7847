// Package overrides holds curated, pre-verified missions that take precedence over
// heuristic extraction for a known consultant or document.
package overrides

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/cv-mission-extractor/internal/types"
)

// Record is one verified mission as written in the overrides file.
type Record struct {
	Client  string   `yaml:"client" validate:"required,min=3"`
	Start   string   `yaml:"start"`
	End     string   `yaml:"end"`
	Role    string   `yaml:"role"`
	Summary string   `yaml:"summary" validate:"max=1000"`
	Skills  []string `yaml:"skills" validate:"max=10"`
}

// Entry binds verified missions to a consultant identifier and/or a document fingerprint.
type Entry struct {
	Consultant  string   `yaml:"consultant" validate:"required_without=Fingerprint"`
	Fingerprint string   `yaml:"fingerprint" validate:"omitempty,len=64,hexadecimal"`
	Missions    []Record `yaml:"missions" validate:"required,min=1,dive"`
}

// File is the YAML document layout.
type File struct {
	Entries []Entry `yaml:"verified_missions" validate:"dive"`
}

// Table answers verified-mission lookups. A nil *Table has no entries.
type Table struct {
	byConsultant  map[string][]types.MissionCandidate
	byFingerprint map[string][]types.MissionCandidate
}

// NewTable validates entries and indexes them. Later entries for the same key are appended.
func NewTable(entries []Entry) (*Table, error) {
	validate := validator.New()
	t := &Table{
		byConsultant:  make(map[string][]types.MissionCandidate),
		byFingerprint: make(map[string][]types.MissionCandidate),
	}

	for i, e := range entries {
		if err := validate.Struct(e); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		missions := make([]types.MissionCandidate, 0, len(e.Missions))
		for j, r := range e.Missions {
			m, err := r.candidate()
			if err != nil {
				return nil, fmt.Errorf("entry %d mission %d: %w", i, j, err)
			}
			missions = append(missions, m)
		}
		if key := ConsultantKey(e.Consultant); key != "" {
			t.byConsultant[key] = append(t.byConsultant[key], missions...)
		}
		if fp := strings.ToLower(e.Fingerprint); fp != "" {
			t.byFingerprint[fp] = append(t.byFingerprint[fp], missions...)
		}
	}
	return t, nil
}

func (r Record) candidate() (types.MissionCandidate, error) {
	start, err := types.ParseDateBound(r.Start)
	if err != nil {
		return types.MissionCandidate{}, fmt.Errorf("start: %w", err)
	}
	end, err := types.ParseDateBound(r.End)
	if err != nil {
		return types.MissionCandidate{}, fmt.Errorf("end: %w", err)
	}
	return types.MissionCandidate{
		Client:          strings.TrimSpace(r.Client),
		Start:           start,
		End:             end,
		Role:            strings.TrimSpace(r.Role),
		Summary:         strings.TrimSpace(r.Summary),
		TechnicalSkills: append([]string{}, r.Skills...),
		SourceStrategy:  types.SourceVerified,
	}, nil
}

// LoadFile reads and indexes a YAML overrides file.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to read file", Cause: err}
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, &LoadError{Path: path, Message: "failed to decode YAML", Cause: err}
	}

	t, err := NewTable(f.Entries)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "invalid entry", Cause: err}
	}
	return t, nil
}

// ConsultantKey normalises a consultant identifier for lookup.
func ConsultantKey(consultant string) string {
	return strings.ToLower(strings.Join(strings.Fields(consultant), " "))
}

// Lookup returns copies of the verified missions for a document. A fingerprint match
// takes precedence over a consultant match.
func (t *Table) Lookup(consultant, fingerprint string) []types.MissionCandidate {
	if t == nil {
		return nil
	}
	found, ok := t.byFingerprint[strings.ToLower(fingerprint)]
	if !ok || fingerprint == "" {
		found = t.byConsultant[ConsultantKey(consultant)]
	}

	out := make([]types.MissionCandidate, len(found))
	for i, m := range found {
		m.TechnicalSkills = append([]string{}, m.TechnicalSkills...)
		out[i] = m
	}
	return out
}

// Len returns the number of indexed keys.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.byConsultant) + len(t.byFingerprint)
}
