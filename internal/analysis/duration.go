package analysis

import (
	"time"

	"github.com/billwatch/billwatch/internal/store"
)

// Interval is an elapsed-day gap between two lifecycle milestones.
// A milestone pair the bill never completed yields Reached=false; the
// -1 sentinel exists only at the export boundary (Sentinel).
type Interval struct {
	Reached bool
	Days    int
}

// Sentinel converts the interval to its external integer form, -1 for
// a gap that was never reached.
func (iv Interval) Sentinel() int {
	if !iv.Reached {
		return -1
	}
	return iv.Days
}

// StageDurations holds the six pairwise elapsed-day gaps between
// consecutive lifecycle milestones plus the total span.
type StageDurations struct {
	BillID string

	ReferralToPresent  Interval // committee referral -> committee presentation
	PresentToCmtProc   Interval // committee presentation -> committee disposition
	CmtProcToLawSubmit Interval // committee disposition -> law-unit submission
	LawSubmitToPresent Interval // law-unit submission -> law-unit presentation
	LawPresentToProc   Interval // law-unit presentation -> law-unit disposition
	LawProcToFinal     Interval // law-unit disposition -> final disposition
	Total              Interval // committee referral -> final disposition
}

// StageNames labels the seven duration fields in lifecycle order,
// matching the order returned by Gaps.
var StageNames = []string{
	"referral_to_present",
	"present_to_cmt_proc",
	"cmt_proc_to_law_submit",
	"law_submit_to_present",
	"law_present_to_proc",
	"law_proc_to_final",
	"total",
}

// Gaps returns the duration fields in lifecycle order.
func (sd StageDurations) Gaps() [7]Interval {
	return [7]Interval{
		sd.ReferralToPresent,
		sd.PresentToCmtProc,
		sd.CmtProcToLawSubmit,
		sd.LawSubmitToPresent,
		sd.LawPresentToProc,
		sd.LawProcToFinal,
		sd.Total,
	}
}

// dateFormats accepted for lifecycle timestamps. Source records carry
// dates at day resolution; the datetime form shows up in a few older
// snapshot exports.
var dateFormats = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
}

// parseDate parses a lifecycle timestamp. A malformed or empty string
// is treated as absent, not as an error; rejecting malformed source
// records is the ingestion validator's job.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func gapDays(from, to string) Interval {
	start, ok := parseDate(from)
	if !ok {
		return Interval{}
	}
	end, ok := parseDate(to)
	if !ok {
		return Interval{}
	}
	days := int(end.Sub(start).Hours() / 24)
	return Interval{Reached: true, Days: days}
}

// ComputeDurations derives the per-bill stage durations from one
// bill-detail record. Pure transform; callers are responsible for
// excluding withdrawn bills from the input population.
func ComputeDurations(d *store.BillDetail) StageDurations {
	return StageDurations{
		BillID:             d.BillID,
		ReferralToPresent:  gapDays(d.CommitteeDate, d.CmtPresentDate),
		PresentToCmtProc:   gapDays(d.CmtPresentDate, d.CmtProcDate),
		CmtProcToLawSubmit: gapDays(d.CmtProcDate, d.LawSubmitDate),
		LawSubmitToPresent: gapDays(d.LawSubmitDate, d.LawPresentDate),
		LawPresentToProc:   gapDays(d.LawPresentDate, d.LawProcDate),
		LawProcToFinal:     gapDays(d.LawProcDate, d.ProcDate),
		Total:              gapDays(d.CommitteeDate, d.ProcDate),
	}
}

// ActivePopulation filters out withdrawn bills. A withdrawn bill never
// entered the active lifecycle sequence, so it is excluded from the
// duration population entirely rather than zero-filled.
func ActivePopulation(details []*store.BillDetail) []*store.BillDetail {
	active := make([]*store.BillDetail, 0, len(details))
	for _, d := range details {
		if d.ProcResult == store.StatusWithdrawn {
			continue
		}
		active = append(active, d)
	}
	return active
}

// DurationTable computes stage durations for every non-withdrawn bill.
func DurationTable(details []*store.BillDetail) []StageDurations {
	active := ActivePopulation(details)
	table := make([]StageDurations, len(active))
	for i, d := range active {
		table[i] = ComputeDurations(d)
	}
	return table
}
