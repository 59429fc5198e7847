// Package gazetteer provides the read-only lookup tables (known clients, technologies,
// jargon patterns, functional skills) shared by the recognizers.
//
// A Gazetteer is built once and never mutated; it is safe for concurrent use.
package gazetteer

import (
	"embed"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFiles embed.FS

const defaultFile = "data/default.yaml"

// Entry is a gazetteer line: a canonical name and optional aliases.
// In YAML it is either a plain scalar or a {name, aliases} mapping.
type Entry struct {
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases,omitempty"`
}

// UnmarshalYAML accepts both the scalar and the mapping form.
func (e *Entry) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		e.Name = value.Value
		return nil
	}
	type plain Entry
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*e = Entry(p)
	return nil
}

// SpecializedEntry maps a regular expression to a canonical label.
type SpecializedEntry struct {
	Pattern string `yaml:"pattern"`
	Label   string `yaml:"label"`
}

// Source is the decoded, uncompiled form of a gazetteer file.
type Source struct {
	Clients      []Entry            `yaml:"clients"`
	Technologies []Entry            `yaml:"technologies"`
	Specialized  []SpecializedEntry `yaml:"specialized"`
	Functional   []Entry            `yaml:"functional_skills"`
}

// Gazetteer holds compiled terms. Accessors return copies.
type Gazetteer struct {
	source       Source
	clients      []Term
	technologies []Term
	specialized  []Specialized
	functional   []Term
}

var (
	defaultOnce sync.Once
	defaultGaz  *Gazetteer
	defaultErr  error
)

// Default returns the process-wide gazetteer built from the embedded tables.
// It panics if the embedded data is invalid, which is a build defect.
func Default() *Gazetteer {
	defaultOnce.Do(func() {
		var data []byte
		data, defaultErr = dataFiles.ReadFile(defaultFile)
		if defaultErr != nil {
			return
		}
		var src Source
		if defaultErr = yaml.Unmarshal(data, &src); defaultErr != nil {
			return
		}
		defaultGaz, defaultErr = New(src)
	})
	if defaultErr != nil {
		panic(fmt.Sprintf("failed to load embedded gazetteer: %v", defaultErr))
	}
	return defaultGaz
}

// New compiles a gazetteer from src. Empty names are skipped; duplicate names
// (case-insensitive) keep their first occurrence.
func New(src Source) (*Gazetteer, error) {
	g := &Gazetteer{source: cloneSource(src)}

	var err error
	if g.clients, err = compileEntries("clients", src.Clients); err != nil {
		return nil, err
	}
	if g.technologies, err = compileEntries("technologies", src.Technologies); err != nil {
		return nil, err
	}
	if g.functional, err = compileEntries("functional_skills", src.Functional); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for i, entry := range src.Specialized {
		label := strings.TrimSpace(entry.Label)
		if label == "" || strings.TrimSpace(entry.Pattern) == "" {
			return nil, &CompileError{Table: "specialized", Index: i, Message: "pattern and label are required"}
		}
		re, err := regexp.Compile(entry.Pattern)
		if err != nil {
			return nil, &CompileError{Table: "specialized", Index: i, Message: "invalid pattern", Cause: err}
		}
		key := strings.ToLower(entry.Pattern)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		g.specialized = append(g.specialized, Specialized{Label: label, Pattern: re})
	}

	return g, nil
}

func compileEntries(table string, entries []Entry) ([]Term, error) {
	terms := make([]Term, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for i, entry := range entries {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		aliases := make([]string, 0, len(entry.Aliases))
		for _, a := range entry.Aliases {
			if a = strings.TrimSpace(a); a != "" {
				aliases = append(aliases, a)
			}
		}
		term, err := newTerm(name, aliases)
		if err != nil {
			return nil, &CompileError{Table: table, Index: i, Message: fmt.Sprintf("cannot compile %q", name), Cause: err}
		}
		terms = append(terms, term)
	}
	return terms, nil
}

// Extend returns a new gazetteer containing the receiver's tables followed by overlay.
// The receiver is left untouched.
func (g *Gazetteer) Extend(overlay Source) (*Gazetteer, error) {
	merged := cloneSource(g.source)
	merged.Clients = append(merged.Clients, overlay.Clients...)
	merged.Technologies = append(merged.Technologies, overlay.Technologies...)
	merged.Specialized = append(merged.Specialized, overlay.Specialized...)
	merged.Functional = append(merged.Functional, overlay.Functional...)
	return New(merged)
}

// Clients returns the known client terms in table order.
func (g *Gazetteer) Clients() []Term {
	return append([]Term(nil), g.clients...)
}

// Technologies returns the technology terms in table order.
func (g *Gazetteer) Technologies() []Term {
	return append([]Term(nil), g.technologies...)
}

// Specialized returns the jargon patterns in table order.
func (g *Gazetteer) Specialized() []Specialized {
	return append([]Specialized(nil), g.specialized...)
}

// Functional returns the functional-skill phrases in table order.
func (g *Gazetteer) Functional() []Term {
	return append([]Term(nil), g.functional...)
}

// ClientNames lists the canonical client names.
func (g *Gazetteer) ClientNames() []string {
	names := make([]string, len(g.clients))
	for i, t := range g.clients {
		names[i] = t.Name
	}
	return names
}

func cloneSource(src Source) Source {
	return Source{
		Clients:      cloneEntries(src.Clients),
		Technologies: cloneEntries(src.Technologies),
		Specialized:  append([]SpecializedEntry(nil), src.Specialized...),
		Functional:   cloneEntries(src.Functional),
	}
}

func cloneEntries(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = Entry{Name: e.Name, Aliases: append([]string(nil), e.Aliases...)}
	}
	return out
}
