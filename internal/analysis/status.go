package analysis

import (
	"errors"
	"math"
	"strings"

	"github.com/billwatch/billwatch/internal/store"
)

// ErrEmptyPopulation is returned by any ratio aggregator invoked over a
// zero-size denominator population. An empty input signals that no data
// was loaded and must be surfaced, never masked as 0 or NaN.
var ErrEmptyPopulation = errors.New("empty bill population")

// passedStatuses is the narrow accepted-outcome set.
var passedStatuses = map[store.BillStatus]bool{
	store.StatusOriginalPassed: true,
	store.StatusAmendedPassed:  true,
}

// finalizedStatuses is the broader resolved-outcome set: passed bills
// plus discards whose content was reflected in an amendment or
// alternative bill.
var finalizedStatuses = map[store.BillStatus]bool{
	store.StatusOriginalPassed:       true,
	store.StatusAmendedPassed:        true,
	store.StatusAmendedDiscarded:     true,
	store.StatusAlternativeDiscarded: true,
}

// IsPassed reports whether the status is in the accepted-outcome set.
func IsPassed(s store.BillStatus) bool {
	return passedStatuses[s]
}

// IsFinalized reports whether the status is in the resolved-outcome set.
// IsPassed implies IsFinalized.
func IsFinalized(s store.BillStatus) bool {
	return finalizedStatuses[s]
}

// CanonicalParty resolves a possibly slash-composite affiliation label
// ("PartyA/PartyB/PartyC") to the canonical current name: the last
// slash-delimited segment.
func CanonicalParty(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	parts := strings.Split(raw, "/")
	return strings.TrimSpace(parts[len(parts)-1])
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
