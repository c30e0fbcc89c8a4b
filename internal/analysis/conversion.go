package analysis

import (
	"github.com/billwatch/billwatch/internal/store"
)

// MilestoneNames labels the lifecycle milestones in order. Each
// milestone logically requires the prior one, so conversion rates are
// non-increasing down this list.
var MilestoneNames = []string{
	"committee_referral",
	"committee_presentation",
	"committee_disposition",
	"law_submission",
	"law_presentation",
	"law_disposition",
	"final_disposition",
}

// MilestoneRate is the fraction of the non-withdrawn population that
// reached one lifecycle milestone.
type MilestoneRate struct {
	Milestone string  `json:"milestone"`
	Reached   int     `json:"reached"`
	Rate      float64 `json:"rate"`
}

// StageMean is the mean elapsed days for one duration field, computed
// over bills where the gap was reached. Count is the number of bills
// contributing to the mean.
type StageMean struct {
	Stage    string  `json:"stage"`
	Count    int     `json:"count"`
	MeanDays float64 `json:"mean_days"`
}

// ConversionReport is the population-level stage conversion summary.
type ConversionReport struct {
	Total    int             `json:"total"`
	Rates    []MilestoneRate `json:"rates"`
	MeanDays []StageMean     `json:"mean_days"`
}

func milestones(d *store.BillDetail) [7]string {
	return [7]string{
		d.CommitteeDate,
		d.CmtPresentDate,
		d.CmtProcDate,
		d.LawSubmitDate,
		d.LawPresentDate,
		d.LawProcDate,
		d.ProcDate,
	}
}

// Conversion computes per-milestone conversion rates and per-stage mean
// durations over the non-withdrawn bill population. The denominator is
// the size of that population, constant across every ratio. Rates are
// rounded to three decimal places.
//
// Returns ErrEmptyPopulation when no non-withdrawn bills exist.
func Conversion(details []*store.BillDetail) (*ConversionReport, error) {
	active := ActivePopulation(details)
	total := len(active)
	if total == 0 {
		return nil, ErrEmptyPopulation
	}

	var reached [7]int
	for _, d := range active {
		for i, ts := range milestones(d) {
			if _, ok := parseDate(ts); ok {
				reached[i]++
			}
		}
	}

	rates := make([]MilestoneRate, len(MilestoneNames))
	for i, name := range MilestoneNames {
		rates[i] = MilestoneRate{
			Milestone: name,
			Reached:   reached[i],
			Rate:      round3(float64(reached[i]) / float64(total)),
		}
	}

	// Means skip sentinels: only bills that completed the stage
	// contribute, never coerced to zero.
	var sums [7]int
	var counts [7]int
	for _, sd := range DurationTable(active) {
		for i, gap := range sd.Gaps() {
			if gap.Reached {
				sums[i] += gap.Days
				counts[i]++
			}
		}
	}

	means := make([]StageMean, len(StageNames))
	for i, name := range StageNames {
		m := StageMean{Stage: name, Count: counts[i]}
		if counts[i] > 0 {
			m.MeanDays = round2(float64(sums[i]) / float64(counts[i]))
		}
		means[i] = m
	}

	return &ConversionReport{
		Total:    total,
		Rates:    rates,
		MeanDays: means,
	}, nil
}
