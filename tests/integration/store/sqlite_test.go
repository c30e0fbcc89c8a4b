package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/billwatch/billwatch/internal/store"
	"github.com/billwatch/billwatch/tests/testutil"
)

func TestInsertAndListBills(t *testing.T) {
	s := testutil.SetupTestStore(t)
	ctx := context.Background()

	bills := []*store.Bill{
		{BillID: "B2", BillNo: "102", BillName: "Privacy Act", CommitteeName: "Justice", Status: store.StatusRejected},
		{BillID: "B1", BillNo: "101", BillName: "Tax Reform Act", Status: store.StatusOriginalPassed},
	}
	if err := s.InsertBills(ctx, bills); err != nil {
		t.Fatalf("failed to insert bills: %v", err)
	}

	got, err := s.ListBills(ctx)
	if err != nil {
		t.Fatalf("failed to list bills: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d bills, want 2", len(got))
	}
	if got[0].BillID != "B1" || got[1].BillID != "B2" {
		t.Errorf("bills not ordered by id: %s, %s", got[0].BillID, got[1].BillID)
	}
	if got[0].CommitteeName != "" {
		t.Errorf("expected empty committee round-trip, got %q", got[0].CommitteeName)
	}
	if got[1].Status != store.StatusRejected {
		t.Errorf("got status %q, want rejected", got[1].Status)
	}
}

func TestInsertBills_ReplaceOnConflict(t *testing.T) {
	s := testutil.SetupTestStore(t)
	ctx := context.Background()

	b := &store.Bill{BillID: "B1", BillNo: "101", BillName: "Tax Reform Act", Status: store.StatusCommitteePending}
	if err := s.InsertBills(ctx, []*store.Bill{b}); err != nil {
		t.Fatalf("failed to insert bill: %v", err)
	}

	b.Status = store.StatusOriginalPassed
	if err := s.InsertBills(ctx, []*store.Bill{b}); err != nil {
		t.Fatalf("failed to re-insert bill: %v", err)
	}

	got, err := s.ListBills(ctx)
	if err != nil {
		t.Fatalf("failed to list bills: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d bills, want 1 (reload must replace)", len(got))
	}
	if got[0].Status != store.StatusOriginalPassed {
		t.Errorf("got status %q, want updated original_passed", got[0].Status)
	}
}

func TestInsertAndListBillDetails(t *testing.T) {
	s := testutil.SetupTestStore(t)
	ctx := context.Background()

	d := &store.BillDetail{
		BillID:        "B1",
		ProcResult:    store.StatusCommitteeInProgress,
		CommitteeDate: "2024-01-01",
	}
	if err := s.InsertBillDetails(ctx, []*store.BillDetail{d}); err != nil {
		t.Fatalf("failed to insert detail: %v", err)
	}

	got, err := s.ListBillDetails(ctx)
	if err != nil {
		t.Fatalf("failed to list details: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d details, want 1", len(got))
	}
	if got[0].CommitteeDate != "2024-01-01" {
		t.Errorf("got committee date %q, want 2024-01-01", got[0].CommitteeDate)
	}
	if got[0].ProcDate != "" {
		t.Errorf("absent milestone must round-trip as empty, got %q", got[0].ProcDate)
	}
}

func TestInsertProposers_Dedup(t *testing.T) {
	s := testutil.SetupTestStore(t)
	ctx := context.Background()

	p := &store.Proposer{BillID: "B1", ProposerID: "M1", ProposerType: store.ProposerLead}
	if err := s.InsertProposers(ctx, []*store.Proposer{p, p}); err != nil {
		t.Fatalf("failed to insert proposers: %v", err)
	}

	got, err := s.ListProposers(ctx)
	if err != nil {
		t.Fatalf("failed to list proposers: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d proposers, want 1 (duplicates ignored)", len(got))
	}
}

func TestGetMember(t *testing.T) {
	s := testutil.SetupTestStore(t)
	ctx := context.Background()

	m := &store.Member{ID: "M1", Name: "Kim", Party: "Progress Party", Committee: "Justice"}
	if err := s.InsertMembers(ctx, []*store.Member{m}); err != nil {
		t.Fatalf("failed to insert member: %v", err)
	}

	got, err := s.GetMember(ctx, "M1")
	if err != nil {
		t.Fatalf("failed to get member: %v", err)
	}
	if got.Name != "Kim" || got.Party != "Progress Party" {
		t.Errorf("got %+v, want Kim / Progress Party", got)
	}

	_, err = s.GetMember(ctx, "NOPE")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestGetBillsByMember(t *testing.T) {
	s := testutil.SetupTestStore(t)
	ctx := context.Background()

	bills := []*store.Bill{
		{BillID: "B1", BillNo: "101", BillName: "Tax Reform Act", CommitteeName: "Budget", Status: store.StatusOriginalPassed},
		{BillID: "B2", BillNo: "102", BillName: "Privacy Act", CommitteeName: "Justice", Status: store.StatusRejected},
		{BillID: "B3", BillNo: "103", BillName: "Other Act", Status: store.StatusOther},
	}
	if err := s.InsertBills(ctx, bills); err != nil {
		t.Fatalf("failed to insert bills: %v", err)
	}

	proposers := []*store.Proposer{
		{BillID: "B1", ProposerID: "M1", ProposerType: store.ProposerLead},
		{BillID: "B2", ProposerID: "M1", ProposerType: store.ProposerCo},
		{BillID: "B3", ProposerID: "M2", ProposerType: store.ProposerLead},
	}
	if err := s.InsertProposers(ctx, proposers); err != nil {
		t.Fatalf("failed to insert proposers: %v", err)
	}

	got, err := s.GetBillsByMember(ctx, "M1")
	if err != nil {
		t.Fatalf("failed to get bills for member: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d bills, want 2", len(got))
	}
	if got[0].BillID != "B1" || got[0].ProposerType != store.ProposerLead {
		t.Errorf("got %s/%s, want B1/lead", got[0].BillID, got[0].ProposerType)
	}
	if got[1].BillID != "B2" || got[1].ProposerType != store.ProposerCo {
		t.Errorf("got %s/%s, want B2/co", got[1].BillID, got[1].ProposerType)
	}

	none, err := s.GetBillsByMember(ctx, "GHOST")
	if err != nil {
		t.Fatalf("unexpected error for unknown member: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("got %d bills for unknown member, want 0", len(none))
	}
}

func TestCounts(t *testing.T) {
	s := testutil.SetupTestStore(t)
	ctx := context.Background()

	counts, err := s.Counts(ctx)
	if err != nil {
		t.Fatalf("failed to count: %v", err)
	}
	if counts.Bills != 0 || counts.Members != 0 {
		t.Errorf("fresh store should be empty, got %+v", counts)
	}

	if err := s.InsertBills(ctx, []*store.Bill{
		{BillID: "B1", BillNo: "101", BillName: "Tax Reform Act", Status: store.StatusOther},
	}); err != nil {
		t.Fatalf("failed to insert bill: %v", err)
	}
	if err := s.InsertMembers(ctx, []*store.Member{{ID: "M1", Name: "Kim"}}); err != nil {
		t.Fatalf("failed to insert member: %v", err)
	}

	counts, err = s.Counts(ctx)
	if err != nil {
		t.Fatalf("failed to count: %v", err)
	}
	if counts.Bills != 1 || counts.Members != 1 || counts.Details != 0 || counts.Proposers != 0 {
		t.Errorf("got %+v, want 1 bill and 1 member", counts)
	}
}
