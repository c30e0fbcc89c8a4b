package analysis

import (
	"sort"

	"github.com/billwatch/billwatch/internal/store"
)

// Uncategorized is the group name for bills with no committee
// assignment. They are reported under this label rather than silently
// dropped from totals.
const Uncategorized = "uncategorized"

// GroupStats holds productivity counts and ratios for one committee or
// party group.
type GroupStats struct {
	Name           string  `json:"name"`
	BillCount      int     `json:"bill_count"`
	PassCount      int     `json:"pass_count"`
	FinalizedCount int     `json:"finalized_count"`
	PassRate       float64 `json:"pass_rate"`
	FinalizeRate   float64 `json:"finalize_rate"`
}

// PartyStats extends GroupStats with the party's member headcount and
// the per-capita productivity ratio bill_count/member_count. PerCapita
// is nil when the party name has no match in the member roster; a
// missing join is propagated, never defaulted to a fake denominator.
type PartyStats struct {
	GroupStats
	MemberCount int      `json:"member_count"`
	PerCapita   *float64 `json:"per_capita"`
}

// SortKey selects the ordering for productivity tables.
type SortKey string

const (
	SortByBillCount    SortKey = "bill_count"
	SortByPassRate     SortKey = "pass_rate"
	SortByFinalizeRate SortKey = "finalize_rate"
	SortByPerCapita    SortKey = "per_capita"
)

type tally struct {
	bills     int
	passed    int
	finalized int
}

func (t *tally) add(status store.BillStatus) {
	t.bills++
	if IsPassed(status) {
		t.passed++
	}
	if IsFinalized(status) {
		t.finalized++
	}
}

func (t *tally) stats(name string) GroupStats {
	return GroupStats{
		Name:           name,
		BillCount:      t.bills,
		PassCount:      t.passed,
		FinalizedCount: t.finalized,
		PassRate:       round2(float64(t.passed) / float64(t.bills)),
		FinalizeRate:   round2(float64(t.finalized) / float64(t.bills)),
	}
}

// ByCommittee groups bills by owning committee and computes counts,
// pass rates, and finalize rates. Bills without a committee are grouped
// under Uncategorized. Result is sorted by bill count descending.
//
// Returns ErrEmptyPopulation for an empty bill collection.
func ByCommittee(bills []*store.Bill) ([]GroupStats, error) {
	if len(bills) == 0 {
		return nil, ErrEmptyPopulation
	}

	tallies := make(map[string]*tally)
	for _, b := range bills {
		name := b.CommitteeName
		if name == "" {
			name = Uncategorized
		}
		t, ok := tallies[name]
		if !ok {
			t = &tally{}
			tallies[name] = t
		}
		t.add(b.Status)
	}

	groups := make([]GroupStats, 0, len(tallies))
	for name, t := range tallies {
		groups = append(groups, t.stats(name))
	}
	sortGroups(groups, SortByBillCount)
	return groups, nil
}

// ByParty groups bills by the canonical party of their lead sponsor and
// computes the same counts plus a per-capita ratio normalized by the
// party's member headcount. Proposers with no matching member record
// are dropped (inner-join semantics). Result is sorted by bill count
// descending; re-sort with SortParties.
func ByParty(bills []*store.Bill, proposers []*store.Proposer, members []*store.Member) ([]PartyStats, error) {
	if len(bills) == 0 {
		return nil, ErrEmptyPopulation
	}

	billStatus := make(map[string]store.BillStatus, len(bills))
	for _, b := range bills {
		billStatus[b.BillID] = b.Status
	}

	memberParty := make(map[string]string, len(members))
	headcount := make(map[string]int)
	for _, m := range members {
		party := CanonicalParty(m.Party)
		memberParty[m.ID] = party
		if party != "" {
			headcount[party]++
		}
	}

	tallies := make(map[string]*tally)
	for _, p := range proposers {
		if p.ProposerType != store.ProposerLead {
			continue
		}
		party, ok := memberParty[p.ProposerID]
		if !ok || party == "" {
			continue
		}
		status, ok := billStatus[p.BillID]
		if !ok {
			continue
		}
		t, exists := tallies[party]
		if !exists {
			t = &tally{}
			tallies[party] = t
		}
		t.add(status)
	}

	parties := make([]PartyStats, 0, len(tallies))
	for name, t := range tallies {
		ps := PartyStats{GroupStats: t.stats(name)}
		if count, ok := headcount[name]; ok && count > 0 {
			ratio := round2(float64(t.bills) / float64(count))
			ps.MemberCount = count
			ps.PerCapita = &ratio
		}
		parties = append(parties, ps)
	}
	SortParties(parties, SortByBillCount)
	return parties, nil
}

func sortGroups(groups []GroupStats, key SortKey) {
	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i], groups[j]
		switch key {
		case SortByPassRate:
			if a.PassRate != b.PassRate {
				return a.PassRate > b.PassRate
			}
		case SortByFinalizeRate:
			if a.FinalizeRate != b.FinalizeRate {
				return a.FinalizeRate > b.FinalizeRate
			}
		default:
			if a.BillCount != b.BillCount {
				return a.BillCount > b.BillCount
			}
		}
		return a.Name < b.Name
	})
}

// SortParties orders party stats by the given key, descending. Parties
// with a missing per-capita ratio sort after those with one.
func SortParties(parties []PartyStats, key SortKey) {
	sort.SliceStable(parties, func(i, j int) bool {
		a, b := parties[i], parties[j]
		switch key {
		case SortByPassRate:
			if a.PassRate != b.PassRate {
				return a.PassRate > b.PassRate
			}
		case SortByFinalizeRate:
			if a.FinalizeRate != b.FinalizeRate {
				return a.FinalizeRate > b.FinalizeRate
			}
		case SortByPerCapita:
			switch {
			case a.PerCapita != nil && b.PerCapita == nil:
				return true
			case a.PerCapita == nil && b.PerCapita != nil:
				return false
			case a.PerCapita != nil && b.PerCapita != nil && *a.PerCapita != *b.PerCapita:
				return *a.PerCapita > *b.PerCapita
			}
		default:
			if a.BillCount != b.BillCount {
				return a.BillCount > b.BillCount
			}
		}
		return a.Name < b.Name
	})
}
