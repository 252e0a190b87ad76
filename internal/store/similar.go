package store

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/subsco/subsco/internal/model"
)

// FindSimilar returns an existing subscription whose name is the same as or
// a near-duplicate of name, so the add form can warn before a double entry.
// Matching is case-insensitive with a small edit-distance allowance for
// longer names ("Netflix" vs "netflix", "Spotify" vs "Spotfiy").
func (s *Store) FindSimilar(name string) *model.Subscription {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return nil
	}
	for i := range s.subscriptions {
		candidate := strings.ToLower(s.subscriptions[i].Name)
		if candidate == needle {
			return &s.subscriptions[i]
		}
		if allowedEdits(needle) == 0 {
			continue
		}
		if levenshtein.ComputeDistance(needle, candidate) <= allowedEdits(needle) {
			return &s.subscriptions[i]
		}
	}
	return nil
}

// allowedEdits scales the edit-distance threshold with name length; short
// names get no fuzz since a single edit changes them entirely.
func allowedEdits(name string) int {
	switch n := len([]rune(name)); {
	case n < 5:
		return 0
	case n < 10:
		return 1
	default:
		return 2
	}
}
