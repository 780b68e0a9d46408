package contract

import (
	"fmt"
	"sort"
	"strings"
)

// Registry is an ordered collection of weapon definitions. Callers should
// Validate before use; lookups go through Index.
type Registry []Definition

// Validate ensures ids are present, unique, and that per-kind parameter
// blocks are not attached to a kind that ignores them. Misplaced blocks are
// rejected at load time so "which fields belong to which mode" stays a
// structural fact rather than a runtime surprise.
func (r Registry) Validate() error {
	seen := make(map[string]struct{}, len(r))
	for _, def := range r {
		if err := def.validate(); err != nil {
			return fmt.Errorf("contract: %w", err)
		}
		if _, exists := seen[def.ID]; exists {
			return fmt.Errorf("contract: duplicate weapon id %q", def.ID)
		}
		seen[def.ID] = struct{}{}
	}
	return nil
}

func (d Definition) validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return fmt.Errorf("weapon id must not be empty")
	}
	if d.Damage < 0 {
		return fmt.Errorf("weapon %q: damage must not be negative", d.ID)
	}
	if d.BlastRadius < 0 {
		return fmt.Errorf("weapon %q: blast radius must not be negative", d.ID)
	}
	if d.Split != nil && d.Kind != KindSplitting {
		return fmt.Errorf("weapon %q: split block requires the splitting kind", d.ID)
	}
	if d.Roll != nil && d.Kind != KindRolling {
		return fmt.Errorf("weapon %q: roll block requires the rolling kind", d.ID)
	}
	if d.Tunnel != nil && d.Kind != KindDigging {
		return fmt.Errorf("weapon %q: tunnel block requires the digging kind", d.ID)
	}
	return nil
}

// Index builds a lookup table keyed by weapon id. The registry must have been
// validated; duplicate ids resolve to the last definition.
func (r Registry) Index() map[string]Definition {
	index := make(map[string]Definition, len(r))
	for _, def := range r {
		index[def.ID] = def
	}
	return index
}

// IDs returns the registered weapon ids in a stable sorted order.
func (r Registry) IDs() []string {
	ids := make([]string, 0, len(r))
	for _, def := range r {
		ids = append(ids, def.ID)
	}
	sort.Strings(ids)
	return ids
}

// Fallback is the definition used when a fire command references an unknown
// weapon id. It behaves as a plain shell so the shot still resolves.
func Fallback() Definition {
	return Definition{
		ID:          "shell",
		Name:        "Shell",
		Kind:        KindStandard,
		Damage:      20,
		BlastRadius: 25,
	}
}
