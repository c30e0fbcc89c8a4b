package ingest

import "github.com/billwatch/billwatch/internal/store"

// Raw record shapes as exported by the snapshot preprocessing step.
// Field names follow the upstream assembly API.

type RawBill struct {
	BillID        string `json:"BILL_ID"`
	BillNo        string `json:"BILL_NO"`
	BillName      string `json:"BILL_NAME"`
	CommitteeName string `json:"COMMITTEE_NAME"`
	Status        string `json:"STATUS"`
	ProposerKind  string `json:"PROPOSER_KIND"`
	ProposeDate   string `json:"PROPOSE_DT"`
	ProcDate      string `json:"PROC_DT"`

	// Document export metadata, present when the bill text was fetched.
	DocTitle      string `json:"DOC_TITLE"`
	IsAlternative bool   `json:"IS_ALTERNATIVE"`
}

type RawBillDetail struct {
	BillID         string `json:"BILL_ID"`
	ProcResult     string `json:"PROC_RESULT"`
	CommitteeDate  string `json:"COMMITTEE_DT"`
	CmtPresentDate string `json:"CMT_PRESENT_DT"`
	CmtProcDate    string `json:"CMT_PROC_DT"`
	LawSubmitDate  string `json:"LAW_SUBMIT_DT"`
	LawPresentDate string `json:"LAW_PRESENT_DT"`
	LawProcDate    string `json:"LAW_PROC_DT"`
	ProcDate       string `json:"PROC_DT"`
}

type RawProposer struct {
	BillID       string `json:"BILL_ID"`
	ProposerID   string `json:"PROPOSER_ID"`
	ProposerType string `json:"PROPOSER_TYPE"`
}

type RawMember struct {
	ID        string `json:"MONA_CD"`
	Name      string `json:"HG_NM"`
	Party     string `json:"POLY_NM"`
	Committee string `json:"CMIT_NM"`
}

// statusLabels maps the Korean source outcome labels to canonical
// status values. Canonical values pass through unchanged so reprocessed
// snapshots load cleanly.
var statusLabels = map[string]store.BillStatus{
	"철회":        store.StatusWithdrawn,
	"원안가결":      store.StatusOriginalPassed,
	"수정가결":      store.StatusAmendedPassed,
	"수정안반영폐기":   store.StatusAmendedDiscarded,
	"대안반영폐기":    store.StatusAlternativeDiscarded,
	"부결":        store.StatusRejected,
	"소관위원회지정대기": store.StatusWaitingCommittee,
	"소관위계류":     store.StatusCommitteePending,
	"법사위계류":     store.StatusLegislationPending,
	"소관위진행중":    store.StatusCommitteeInProgress,
	"법사위진행중":    store.StatusLegislationInProgress,
	"기타":        store.StatusOther,
}

var canonicalStatuses = map[store.BillStatus]bool{
	store.StatusOriginalPassed:        true,
	store.StatusAmendedPassed:         true,
	store.StatusAmendedDiscarded:      true,
	store.StatusAlternativeDiscarded:  true,
	store.StatusWithdrawn:             true,
	store.StatusRejected:              true,
	store.StatusWaitingCommittee:      true,
	store.StatusCommitteePending:      true,
	store.StatusLegislationPending:    true,
	store.StatusCommitteeInProgress:   true,
	store.StatusLegislationInProgress: true,
	store.StatusOther:                 true,
}

// MapStatus converts a source status label to its canonical value.
// Unknown labels map to StatusOther.
func MapStatus(label string) store.BillStatus {
	if s, ok := statusLabels[label]; ok {
		return s
	}
	if canonicalStatuses[store.BillStatus(label)] {
		return store.BillStatus(label)
	}
	return store.StatusOther
}

var proposerLabels = map[string]store.ProposerType{
	"의원대표": store.ProposerLead,
	"의원공동": store.ProposerCo,
	"정부":   store.ProposerGovernment,
	"위원장":  store.ProposerCommittee,
}

// MapProposerType converts a source proposer role label to its
// canonical value. Canonical values pass through; anything else is
// treated as a co-sponsor, the dominant role in the source data.
func MapProposerType(label string) store.ProposerType {
	if t, ok := proposerLabels[label]; ok {
		return t
	}
	switch pt := store.ProposerType(label); pt {
	case store.ProposerLead, store.ProposerCo, store.ProposerGovernment, store.ProposerCommittee:
		return pt
	}
	return store.ProposerCo
}
