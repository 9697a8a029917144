// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package atlas

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestions bounds NotFoundError.Suggestions.
const maxSuggestions = 3

// NotFoundError is returned by Lookup for a name not in the manifest.
type NotFoundError struct {
	Name        string
	Suggestions []string // closest names, nearest first
}

func (e *NotFoundError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("atlas: no entry %q", e.Name)
	}
	return fmt.Sprintf("atlas: no entry %q (did you mean %s?)", e.Name, strings.Join(e.Suggestions, ", "))
}

// Region is the inset UV rectangle of an entry.
type Region struct {
	U0, V0 float32
	U1, V1 float32
}

// Lookup returns the entry called name.
func (m *Manifest) Lookup(name string) (Entry, error) {
	for i := range m.Entries {
		if m.Entries[i].Name == name {
			return m.Entries[i], nil
		}
	}
	return Entry{}, &NotFoundError{Name: name, Suggestions: m.suggest(name)}
}

// Region returns the UV rectangle of the entry called name. Coordinates
// are generated on the fly if the entry has none yet.
func (m *Manifest) Region(name string) (Region, error) {
	e, err := m.Lookup(name)
	if err != nil {
		return Region{}, err
	}
	if e.StartCoord == nil || e.EndCoord == nil {
		e.GenerateCoords(m.Width, m.Height)
	}
	return Region{
		U0: e.StartCoord[0], V0: e.StartCoord[1],
		U1: e.EndCoord[0], V1: e.EndCoord[1],
	}, nil
}

type candidate struct {
	name string
	dist int
}

// suggest ranks entry names by edit distance to name and keeps the close
// ones.
func (m *Manifest) suggest(name string) []string {
	limit := max(2, len([]rune(name))/2)

	var cands []candidate
	for i := range m.Entries {
		d := levenshtein.ComputeDistance(name, m.Entries[i].Name)
		if d <= limit {
			cands = append(cands, candidate{m.Entries[i].Name, d})
		}
	}
	slices.SortFunc(cands, func(a, b candidate) int {
		if c := cmp.Compare(a.dist, b.dist); c != 0 {
			return c
		}
		return strings.Compare(a.name, b.name)
	})

	out := make([]string, 0, min(len(cands), maxSuggestions))
	for _, c := range cands {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, c.name)
	}
	return out
}
