/*
order.go - Assignment-sequence ordering (shuffle and continuous rotation)

PURPOSE:
  Produces the ordered sequence the builder consumes round-robin for one
  month. Two policies:

  Shuffle:
    Uniform random permutation (Fisher-Yates). No determinism guarantee;
    every name appears exactly once.

  Continuous:
    Sorts the roster with Brazilian-Portuguese collation and rotates it so
    the sequence resumes immediately after the previous month's last
    assigned person (the resume cursor). A cursor whose person left the
    roster resumes at the first name sorting strictly after it, wrapping to
    the start when none exists.

COLLATION:
  The alphabetical order is a language-sensitive contract: accented names
  must sort where a pt-BR speaker expects them. The collator is pinned to
  language.BrazilianPortuguese at base-letter strength, so comparisons
  ignore both case and diacritics: "José" and "jose" are the same name,
  not a roster change.
*/
package roster

import (
	"math/rand"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// newCollator returns the pinned roster collator: Brazilian Portuguese,
// ignoring case and diacritics. Ties between equivalent names keep input
// order via the stable sort.
func newCollator() *collate.Collator {
	return collate.New(language.BrazilianPortuguese, collate.Loose)
}

// Order returns a permutation of people to be consumed round-robin for the
// month: same set, same length, no duplicates or drops.
//
// resumeCursor is the last-assigned name of the preceding month and is only
// consulted in continuous mode; pass "" when no prior month is recorded.
func Order(people []string, mode Mode, resumeCursor string) ([]string, error) {
	if len(people) < 2 {
		return nil, &InsufficientRosterError{Have: len(people)}
	}

	out := make([]string, len(people))
	copy(out, people)

	switch mode {
	case ModeShuffle:
		shuffle(out)
		return out, nil
	case ModeContinuous:
		return continuous(out, resumeCursor), nil
	default:
		return nil, ErrUnknownMode
	}
}

// shuffle applies Fisher-Yates in place: walk from the last index down,
// swapping each position with a random index in [0, i].
func shuffle(names []string) {
	for i := len(names) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		names[i], names[j] = names[j], names[i]
	}
}

// continuous sorts names alphabetically and rotates the list to start at
// the resume point.
func continuous(names []string, resumeCursor string) []string {
	c := newCollator()
	sort.SliceStable(names, func(i, j int) bool {
		return c.CompareString(names[i], names[j]) < 0
	})

	if resumeCursor == "" {
		return names
	}

	start := 0
	if idx := indexOf(names, resumeCursor); idx >= 0 {
		// Cursor still on the roster: resume right after it, wrapping.
		start = (idx + 1) % len(names)
	} else {
		// Cursor's person was removed: resume at the first name sorting
		// strictly after the cursor, or wrap to the beginning.
		start = len(names)
		for i, name := range names {
			if c.CompareString(name, resumeCursor) > 0 {
				start = i
				break
			}
		}
		if start == len(names) {
			start = 0
		}
	}

	rotated := make([]string, 0, len(names))
	rotated = append(rotated, names[start:]...)
	rotated = append(rotated, names[:start]...)
	return rotated
}

func indexOf(names []string, target string) int {
	for i, name := range names {
		if name == target {
			return i
		}
	}
	return -1
}

// SortedNames returns a copy of names in the pinned collation order. Used
// for order-independent roster comparison.
func SortedNames(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	c := newCollator()
	sort.SliceStable(out, func(i, j int) bool {
		return c.CompareString(out[i], out[j]) < 0
	})
	return out
}

// SameRoster reports whether two rosters contain the same names,
// order-independent and case- and accent-insensitive under the pinned
// collation. It decides whether a saved schedule can be reused for its
// period.
func SameRoster(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	sa, sb := SortedNames(a), SortedNames(b)
	c := newCollator()
	for i := range sa {
		if c.CompareString(sa[i], sb[i]) != 0 {
			return false
		}
	}
	return true
}
