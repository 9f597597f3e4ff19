package fs

import (
	"github.com/aretw0/introspection"
)

// SourceState exposes internal state for observability.
type SourceState struct {
	Root       string   `json:"root"`
	Kind       string   `json:"kind"`
	Extensions []string `json:"extensions"`
	Pattern    string   `json:"pattern"`
}

// State implements introspection.Introspectable.
func (s *Source) State() any {
	return SourceState{
		Root:       s.config.Root,
		Kind:       string(s.config.Kind),
		Extensions: append([]string(nil), s.config.Extensions...),
		Pattern:    s.pattern,
	}
}

// ComponentType implements introspection.Component.
func (s *Source) ComponentType() string {
	return "fs-source"
}

var _ introspection.Introspectable = (*Source)(nil)
var _ introspection.Component = (*Source)(nil)
