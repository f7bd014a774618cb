package locgen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Territory is a named route with a fixed numeric prefix. The prefix is
// prepended to every block number on the route to form a global block ID.
type Territory struct {
	Name string `mapstructure:"name"`
	Code uint32 `mapstructure:"code"`
}

// DefaultTerritories are the routes known to the generator when no
// configuration overrides them.
var DefaultTerritories = []Territory{
	{Name: "Mojave Sub", Code: 100},
}

// maxSuggestDistance caps the edit distance for "did you mean" hints so that
// wildly different route names don't produce misleading suggestions.
const maxSuggestDistance = 3

// Territories is an immutable, validated set of territories indexed by name.
type Territories struct {
	byName map[string]Territory
	names  []string // sorted, for deterministic suggestions
}

// NewTerritories validates ts and builds a lookup set.
// Names must be non-empty and unique, codes positive and unique.
func NewTerritories(ts []Territory) (*Territories, error) {
	set := &Territories{byName: make(map[string]Territory, len(ts))}
	codes := make(map[uint32]string, len(ts))
	for _, t := range ts {
		if strings.TrimSpace(t.Name) == "" {
			return nil, fmt.Errorf("%w: empty territory name (code %d)", ErrInvalidTerritory, t.Code)
		}
		if t.Code == 0 {
			return nil, fmt.Errorf("%w: territory %q has code 0", ErrInvalidTerritory, t.Name)
		}
		if _, dup := set.byName[t.Name]; dup {
			return nil, fmt.Errorf("%w: territory %q listed twice", ErrInvalidTerritory, t.Name)
		}
		if other, dup := codes[t.Code]; dup {
			return nil, fmt.Errorf("%w: territories %q and %q share code %d", ErrInvalidTerritory, other, t.Name, t.Code)
		}
		set.byName[t.Name] = t
		codes[t.Code] = t.Name
		set.names = append(set.names, t.Name)
	}
	sort.Strings(set.names)
	return set, nil
}

// Lookup returns the territory for a route name. Names are matched exactly.
func (s *Territories) Lookup(route string) (Territory, bool) {
	t, ok := s.byName[route]
	return t, ok
}

// Len returns the number of territories in the set.
func (s *Territories) Len() int { return len(s.byName) }

// resolve looks up a route, returning an ErrUnknownTerritory error with a
// suggestion when the route is close to a known name.
func (s *Territories) resolve(route string) (Territory, error) {
	if t, ok := s.Lookup(route); ok {
		return t, nil
	}
	if hint := s.suggest(route); hint != "" {
		return Territory{}, fmt.Errorf("%w (did you mean %q?)", ErrUnknownTerritory, hint)
	}
	return Territory{}, ErrUnknownTerritory
}

// suggest returns the known territory name closest to route, or "" if none
// is within maxSuggestDistance. Ties go to the alphabetically first name.
func (s *Territories) suggest(route string) string {
	best, bestDist := "", maxSuggestDistance+1
	query := strings.ToLower(strings.TrimSpace(route))
	for _, name := range s.names {
		dist := levenshtein.ComputeDistance(query, strings.ToLower(name))
		if dist < bestDist {
			best, bestDist = name, dist
		}
	}
	return best
}
