package store

// BillStatus is the closed set of outcome labels a bill can carry.
// Source records use Korean labels; the loader maps them to these
// canonical values before insert.
type BillStatus string

const (
	StatusOriginalPassed        BillStatus = "original_passed"
	StatusAmendedPassed         BillStatus = "amended_passed"
	StatusAmendedDiscarded      BillStatus = "amended_discarded"
	StatusAlternativeDiscarded  BillStatus = "alternative_discarded"
	StatusWithdrawn             BillStatus = "withdrawn"
	StatusRejected              BillStatus = "rejected"
	StatusWaitingCommittee      BillStatus = "waiting_committee"
	StatusCommitteePending      BillStatus = "committee_pending"
	StatusLegislationPending    BillStatus = "legislation_pending"
	StatusCommitteeInProgress   BillStatus = "committee_in_progress"
	StatusLegislationInProgress BillStatus = "legislation_in_progress"
	StatusOther                 BillStatus = "other"
)

// ProposerType tags the role a proposer played on a bill.
type ProposerType string

const (
	ProposerLead       ProposerType = "lead"
	ProposerCo         ProposerType = "co"
	ProposerGovernment ProposerType = "government"
	ProposerCommittee  ProposerType = "committee"
)

type Bill struct {
	BillID        string
	BillNo        string
	BillName      string
	CommitteeName string // empty when no committee has been assigned
	Status        BillStatus
	ProposerKind  string
	ProposeDate   string
	ProcDate      string
}

// BillDetail carries the seven lifecycle timestamps for one bill.
// Each date field is an ISO date string or empty when the milestone
// was never reached.
type BillDetail struct {
	BillID         string
	ProcResult     BillStatus
	CommitteeDate  string // committee referral
	CmtPresentDate string // committee presentation
	CmtProcDate    string // committee disposition
	LawSubmitDate  string // law-unit submission
	LawPresentDate string // law-unit presentation
	LawProcDate    string // law-unit disposition
	ProcDate       string // final disposition / promulgation
}

type Proposer struct {
	BillID       string
	ProposerID   string
	ProposerType ProposerType
}

type Member struct {
	ID        string // MONA_CD
	Name      string
	Party     string // raw affiliation, possibly slash-composite
	Committee string
}

// MemberBill is a bill joined with the role the member played on it.
type MemberBill struct {
	Bill
	ProposerType ProposerType
}

type RecordCounts struct {
	Bills     int
	Details   int
	Proposers int
	Members   int
}
