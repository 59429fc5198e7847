package gazetteer

import (
	"os"

	"gopkg.in/yaml.v3"
)

// LoadSource reads a YAML gazetteer file without compiling it.
func LoadSource(path string) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Source{}, &LoadError{Path: path, Message: "failed to read file", Cause: err}
	}

	var src Source
	if err := yaml.Unmarshal(data, &src); err != nil {
		return Source{}, &LoadError{Path: path, Message: "failed to decode YAML", Cause: err}
	}
	return src, nil
}

// LoadFile builds a standalone gazetteer from a YAML file.
func LoadFile(path string) (*Gazetteer, error) {
	src, err := LoadSource(path)
	if err != nil {
		return nil, err
	}
	g, err := New(src)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "invalid gazetteer", Cause: err}
	}
	return g, nil
}

// WithOverlay returns Default() extended with the tables in path.
// An empty path returns Default() itself.
func WithOverlay(path string) (*Gazetteer, error) {
	if path == "" {
		return Default(), nil
	}
	src, err := LoadSource(path)
	if err != nil {
		return nil, err
	}
	g, err := Default().Extend(src)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "invalid overlay", Cause: err}
	}
	return g, nil
}
