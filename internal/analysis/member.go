package analysis

import (
	"sort"

	"github.com/billwatch/billwatch/internal/store"
)

// MemberBillStats holds one member's proposal counts and pass rates,
// split by the role the member played. Rates are fractions rounded to
// two decimals; percentage formatting belongs to the response boundary.
type MemberBillStats struct {
	TotalCount    int     `json:"total_count"`
	TotalPassRate float64 `json:"total_pass_rate"`
	LeadCount     int     `json:"lead_count"`
	LeadPassRate  float64 `json:"lead_pass_rate"`
	CoCount       int     `json:"co_count"`
	CoPassRate    float64 `json:"co_pass_rate"`
}

// CommitteeActivity is one member's proposal activity within a single
// committee.
type CommitteeActivity struct {
	ActiveCommittee string `json:"active_committee"`
	TotalCount      int    `json:"total_count"`
	LeadCount       int    `json:"lead_count"`
	CoCount         int    `json:"co_count"`
}

// MemberStatistics is the full derived record for one member.
type MemberStatistics struct {
	MemberID       string              `json:"member_id"`
	MemberName     string              `json:"member_name"`
	Party          string              `json:"party"`
	BillStats      MemberBillStats     `json:"bill_stats"`
	CommitteeStats []CommitteeActivity `json:"committee_stats"`
}

// MemberStats aggregates a member's joined bill list into counts, pass
// rates, and per-committee activity. A member with no bills yields zero
// counts and zero rates; the zero here describes the member, not a
// masked empty population.
func MemberStats(member *store.Member, bills []*store.MemberBill) *MemberStatistics {
	stats := &MemberStatistics{
		MemberID:   member.ID,
		MemberName: member.Name,
		Party:      CanonicalParty(member.Party),
	}

	var totalPassed, leadPassed, coPassed int
	committees := make(map[string]*CommitteeActivity)
	var order []string

	for _, b := range bills {
		passed := IsPassed(b.Status)

		stats.BillStats.TotalCount++
		if passed {
			totalPassed++
		}

		switch b.ProposerType {
		case store.ProposerLead:
			stats.BillStats.LeadCount++
			if passed {
				leadPassed++
			}
		case store.ProposerCo:
			stats.BillStats.CoCount++
			if passed {
				coPassed++
			}
		}

		name := b.CommitteeName
		if name == "" {
			name = Uncategorized
		}
		ca, ok := committees[name]
		if !ok {
			ca = &CommitteeActivity{ActiveCommittee: name}
			committees[name] = ca
			order = append(order, name)
		}
		ca.TotalCount++
		switch b.ProposerType {
		case store.ProposerLead:
			ca.LeadCount++
		case store.ProposerCo:
			ca.CoCount++
		}
	}

	if stats.BillStats.TotalCount > 0 {
		stats.BillStats.TotalPassRate = round2(float64(totalPassed) / float64(stats.BillStats.TotalCount))
	}
	if stats.BillStats.LeadCount > 0 {
		stats.BillStats.LeadPassRate = round2(float64(leadPassed) / float64(stats.BillStats.LeadCount))
	}
	if stats.BillStats.CoCount > 0 {
		stats.BillStats.CoPassRate = round2(float64(coPassed) / float64(stats.BillStats.CoCount))
	}

	for _, name := range order {
		stats.CommitteeStats = append(stats.CommitteeStats, *committees[name])
	}
	sort.SliceStable(stats.CommitteeStats, func(i, j int) bool {
		a, b := stats.CommitteeStats[i], stats.CommitteeStats[j]
		if a.TotalCount != b.TotalCount {
			return a.TotalCount > b.TotalCount
		}
		return a.ActiveCommittee < b.ActiveCommittee
	})

	return stats
}

// RankCriterion selects the ordering for member rankings.
type RankCriterion string

const (
	RankTotalBills RankCriterion = "total_bills"
	RankTotalPass  RankCriterion = "total_pass_rate"
	RankLeadBills  RankCriterion = "lead_bills"
	RankLeadPass   RankCriterion = "lead_pass_rate"
	RankCoBills    RankCriterion = "co_bills"
	RankCoPass     RankCriterion = "co_pass_rate"
)

// RankCriteria lists the supported criteria in display order.
var RankCriteria = []RankCriterion{
	RankTotalBills, RankTotalPass,
	RankLeadBills, RankLeadPass,
	RankCoBills, RankCoPass,
}

func rankValue(s *MemberStatistics, c RankCriterion) float64 {
	switch c {
	case RankTotalPass:
		return s.BillStats.TotalPassRate
	case RankLeadBills:
		return float64(s.BillStats.LeadCount)
	case RankLeadPass:
		return s.BillStats.LeadPassRate
	case RankCoBills:
		return float64(s.BillStats.CoCount)
	case RankCoPass:
		return s.BillStats.CoPassRate
	default:
		return float64(s.BillStats.TotalCount)
	}
}

// TopMembers sorts member statistics by the given criterion, descending,
// and truncates to limit. An unknown criterion falls back to total bill
// count. limit <= 0 means no truncation.
func TopMembers(all []*MemberStatistics, criterion RankCriterion, limit int) []*MemberStatistics {
	ranked := make([]*MemberStatistics, len(all))
	copy(ranked, all)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := rankValue(ranked[i], criterion), rankValue(ranked[j], criterion)
		if a != b {
			return a > b
		}
		return ranked[i].MemberID < ranked[j].MemberID
	})

	if limit > 0 && limit < len(ranked) {
		ranked = ranked[:limit]
	}
	return ranked
}

// BillStatistics aggregates bills sharing one bill name.
type BillStatistics struct {
	BillCode      string  `json:"bill_code"`
	BillName      string  `json:"bill_name"`
	BillCommittee string  `json:"bill_committee"`
	BillCount     int     `json:"bill_count"`
	BillPassRate  float64 `json:"bill_pass_rate"`
}

// BillStats groups bills by name, counting proposals and pass rate per
// name. BillCode and committee come from the first bill encountered
// under each name. Sorted by count descending.
func BillStats(bills []*store.Bill, limit int) ([]BillStatistics, error) {
	if len(bills) == 0 {
		return nil, ErrEmptyPopulation
	}

	type agg struct {
		first  *store.Bill
		count  int
		passed int
	}
	byName := make(map[string]*agg)
	var order []string

	for _, b := range bills {
		a, ok := byName[b.BillName]
		if !ok {
			a = &agg{first: b}
			byName[b.BillName] = a
			order = append(order, b.BillName)
		}
		a.count++
		if IsPassed(b.Status) {
			a.passed++
		}
	}

	stats := make([]BillStatistics, 0, len(order))
	for _, name := range order {
		a := byName[name]
		committee := a.first.CommitteeName
		if committee == "" {
			committee = Uncategorized
		}
		stats = append(stats, BillStatistics{
			BillCode:      a.first.BillNo,
			BillName:      name,
			BillCommittee: committee,
			BillCount:     a.count,
			BillPassRate:  round2(float64(a.passed) / float64(a.count)),
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].BillCount != stats[j].BillCount {
			return stats[i].BillCount > stats[j].BillCount
		}
		return stats[i].BillName < stats[j].BillName
	})

	if limit > 0 && limit < len(stats) {
		stats = stats[:limit]
	}
	return stats, nil
}
