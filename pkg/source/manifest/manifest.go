// Package manifest parses TOML relation manifests.
//
// A manifest names a relation set and lists its directed precedence facts:
//
//	name = "workspace"
//
//	[[relation]]
//	left = "chat"
//	right = "workspaces"
//
//	[[relation]]
//	left = "workspaces"
//	right = "teams"
package manifest

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/mvidal/strata/pkg/layers"
)

type file struct {
	Name      string     `toml:"name"`
	Relations []relation `toml:"relation"`
}

type relation struct {
	Left  string `toml:"left"`
	Right string `toml:"right"`
}

// ParseFile reads and parses a TOML relation manifest.
func ParseFile(path string) (layers.RelationSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return layers.RelationSet{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses a TOML relation manifest and validates its relations.
func Parse(data []byte) (layers.RelationSet, error) {
	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return layers.RelationSet{}, fmt.Errorf("parse manifest: %w", err)
	}

	set := layers.RelationSet{Name: f.Name}
	for _, r := range f.Relations {
		set.Relations = append(set.Relations, layers.Relation{Left: r.Left, Right: r.Right})
	}
	if err := set.Validate(); err != nil {
		return layers.RelationSet{}, err
	}
	return set, nil
}
