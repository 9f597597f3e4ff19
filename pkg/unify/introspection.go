package unify

import (
	"github.com/aretw0/introspection"
)

// State implements introspection.Introspectable.
// It reports the priority order the unifier will consult.
func (u *Unifier) State() any {
	order := make([]string, 0, len(u.sources))
	for _, s := range u.sources {
		order = append(order, string(s.Kind()))
	}
	return map[string]any{
		"sources": order,
		"metrics": u.metrics != nil,
	}
}

// ComponentType implements introspection.Component.
func (u *Unifier) ComponentType() string {
	return "unifier"
}

var _ introspection.Introspectable = (*Unifier)(nil)
var _ introspection.Component = (*Unifier)(nil)
