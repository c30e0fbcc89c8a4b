package analysis_test

import (
	"reflect"
	"testing"

	"github.com/billwatch/billwatch/internal/analysis"
	"github.com/billwatch/billwatch/internal/store"
)

func sponsorshipFixture() ([]*store.Proposer, []*store.Member) {
	members := []*store.Member{
		{ID: "M1", Name: "Kim", Party: "Progress Party"},
		{ID: "M2", Name: "Lee", Party: "Progress Party"},
		{ID: "M3", Name: "Park", Party: "Reform Party"},
	}
	proposers := []*store.Proposer{
		{BillID: "B1", ProposerID: "M1", ProposerType: store.ProposerLead},
		{BillID: "B1", ProposerID: "M2", ProposerType: store.ProposerCo},
		{BillID: "B1", ProposerID: "M3", ProposerType: store.ProposerCo},
		{BillID: "B2", ProposerID: "M1", ProposerType: store.ProposerLead},
		{BillID: "B2", ProposerID: "M2", ProposerType: store.ProposerCo},
	}
	return proposers, members
}

func TestJoinSponsorships_TallyAndIDsSeparate(t *testing.T) {
	proposers, members := sponsorshipFixture()

	joined := analysis.JoinSponsorships(proposers, members)
	if len(joined) != 2 {
		t.Fatalf("got %d bills, want 2", len(joined))
	}

	b1 := joined[0]
	if b1.BillID != "B1" {
		t.Fatalf("expected B1 first (encounter order), got %s", b1.BillID)
	}

	wantTally := map[string]int{"Progress Party": 2, "Reform Party": 1}
	if !reflect.DeepEqual(b1.PartyTally, wantTally) {
		t.Errorf("got tally %v, want %v", b1.PartyTally, wantTally)
	}

	wantIDs := []string{"M1", "M2", "M3"}
	if !reflect.DeepEqual(b1.ProposerIDs, wantIDs) {
		t.Errorf("got proposer ids %v, want %v", b1.ProposerIDs, wantIDs)
	}
}

func TestJoinSponsorships_CrossPartyClassification(t *testing.T) {
	proposers, members := sponsorshipFixture()

	joined := analysis.JoinSponsorships(proposers, members)

	if !joined[0].CrossParty() {
		t.Error("B1 spans two parties, must classify as cross-party")
	}
	if joined[1].CrossParty() {
		t.Error("B2 has a single party, must not classify as cross-party")
	}
}

func TestJoinSponsorships_UnmatchedProposerDropped(t *testing.T) {
	members := []*store.Member{
		{ID: "M1", Name: "Kim", Party: "Progress Party"},
	}
	proposers := []*store.Proposer{
		{BillID: "B1", ProposerID: "M1", ProposerType: store.ProposerLead},
		{BillID: "B1", ProposerID: "GHOST", ProposerType: store.ProposerCo},
	}

	joined := analysis.JoinSponsorships(proposers, members)
	if len(joined) != 1 {
		t.Fatalf("got %d bills, want 1", len(joined))
	}
	if len(joined[0].ProposerIDs) != 1 || joined[0].ProposerIDs[0] != "M1" {
		t.Errorf("unmatched proposer must be dropped, got ids %v", joined[0].ProposerIDs)
	}
	if len(joined[0].PartyTally) != 1 {
		t.Errorf("unmatched proposer must not create a synthetic party, got %v", joined[0].PartyTally)
	}
}

func TestJoinSponsorships_EncounterOrderPreserved(t *testing.T) {
	members := []*store.Member{
		{ID: "M1", Name: "Kim", Party: "Reform Party"},
		{ID: "M2", Name: "Lee", Party: "Progress Party"},
	}
	proposers := []*store.Proposer{
		{BillID: "B9", ProposerID: "M1", ProposerType: store.ProposerLead},
		{BillID: "B2", ProposerID: "M2", ProposerType: store.ProposerLead},
		{BillID: "B9", ProposerID: "M2", ProposerType: store.ProposerCo},
	}

	joined := analysis.JoinSponsorships(proposers, members)
	if len(joined) != 2 || joined[0].BillID != "B9" || joined[1].BillID != "B2" {
		t.Fatalf("expected encounter order B9, B2; got %+v", joined)
	}
}

func TestCrossPartyBills_JoinsBackToBills(t *testing.T) {
	proposers, members := sponsorshipFixture()
	bills := []*store.Bill{
		bill("B1", "Justice", store.StatusOriginalPassed),
		bill("B2", "Budget", store.StatusRejected),
	}

	cross := analysis.CrossPartyBills(bills, proposers, members)
	if len(cross) != 1 {
		t.Fatalf("got %d cross-party bills, want 1", len(cross))
	}
	if cross[0].Bill.BillID != "B1" {
		t.Errorf("got bill %s, want B1", cross[0].Bill.BillID)
	}
	if cross[0].PartyTally["Progress Party"] != 2 {
		t.Errorf("tally lost on the bill join: %v", cross[0].PartyTally)
	}
}
