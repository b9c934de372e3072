// Package ident generates the prefixed identifiers used to address scene
// objects in configs, traces and logs.
package ident

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

const (
	PrefixActor     = "actor"
	PrefixComponent = "comp"
	PrefixCamera    = "cam"
	PrefixLayer     = "layer"
	PrefixScene     = "scene"
)

// New returns a new sortable id with the given prefix.
func New(prefix string) string {
	id := typeid.MustGenerate(prefix)
	return id.String()
}

func NewActorID() string     { return New(PrefixActor) }
func NewComponentID() string { return New(PrefixComponent) }
func NewCameraID() string    { return New(PrefixCamera) }
func NewLayerID() string     { return New(PrefixLayer) }
func NewSceneID() string     { return New(PrefixScene) }

// Validate checks that id parses and carries the expected prefix.
func Validate(id, expectedPrefix string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid id %q: %w", id, err)
	}
	if parsed.Prefix() != expectedPrefix {
		return fmt.Errorf("expected prefix %q but got %q in id %q", expectedPrefix, parsed.Prefix(), id)
	}
	return nil
}
