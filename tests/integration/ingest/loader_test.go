package ingest_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/billwatch/billwatch/internal/ingest"
	"github.com/billwatch/billwatch/internal/store"
	"github.com/billwatch/billwatch/tests/testutil"
)

func writeSnapshot(t *testing.T, dir, name string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal %s: %v", name, err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func setupSnapshotDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	bills := []map[string]any{
		{
			"BILL_ID": "B1", "BILL_NO": "2100001", "BILL_NAME": "Tax Reform Act",
			"COMMITTEE_NAME": "Budget", "STATUS": "원안가결", "PROPOSER_KIND": "의원",
		},
		{
			"BILL_ID": "B2", "BILL_NO": "", "BILL_NAME": "Broken Bill",
			"STATUS": "부결",
		},
	}
	writeSnapshot(t, dir, ingest.BillsFile, bills)

	details := []map[string]any{
		{"BILL_ID": "B1", "PROC_RESULT": "원안가결", "COMMITTEE_DT": "2024-01-01", "PROC_DT": "2024-01-11"},
		{"BILL_ID": "B2", "PROC_RESULT": "부결", "COMMITTEE_DT": "2024-01-01"},
	}
	writeSnapshot(t, dir, ingest.DetailsFile, details)

	proposers := []map[string]any{
		{"BILL_ID": "B1", "PROPOSER_ID": "M1", "PROPOSER_TYPE": "의원대표"},
		{"BILL_ID": "B2", "PROPOSER_ID": "M1", "PROPOSER_TYPE": "의원공동"},
	}
	writeSnapshot(t, dir, ingest.ProposersFile, proposers)

	members := []map[string]any{
		{"MONA_CD": "M1", "HG_NM": "Kim", "POLY_NM": "Progress Party", "CMIT_NM": "Budget"},
	}
	writeSnapshot(t, dir, ingest.MembersFile, members)

	return dir
}

func TestLoad_FullSnapshot(t *testing.T) {
	s := testutil.SetupTestStore(t)
	dir := setupSnapshotDir(t)

	report, err := ingest.Load(context.Background(), s, dir)
	if err != nil {
		t.Fatalf("failed to load snapshot: %v", err)
	}

	// B2 fails validation; its detail and proposer rows go with it.
	if report.Skipped != 1 {
		t.Errorf("got %d skipped, want 1", report.Skipped)
	}
	if len(report.Violations) != 1 || report.Violations[0].BillID != "B2" {
		t.Errorf("expected one violation for B2, got %v", report.Violations)
	}
	if report.Counts.Bills != 1 || report.Counts.Details != 1 || report.Counts.Proposers != 1 || report.Counts.Members != 1 {
		t.Errorf("got counts %+v, want 1/1/1/1", report.Counts)
	}
}

func TestLoad_MapsLabelsToCanonical(t *testing.T) {
	s := testutil.SetupTestStore(t)
	dir := setupSnapshotDir(t)
	ctx := context.Background()

	if _, err := ingest.Load(ctx, s, dir); err != nil {
		t.Fatalf("failed to load snapshot: %v", err)
	}

	bills, err := s.ListBills(ctx)
	if err != nil {
		t.Fatalf("failed to list bills: %v", err)
	}
	if len(bills) != 1 {
		t.Fatalf("got %d bills, want 1", len(bills))
	}
	if bills[0].Status != store.StatusOriginalPassed {
		t.Errorf("got status %q, want original_passed", bills[0].Status)
	}

	proposers, err := s.ListProposers(ctx)
	if err != nil {
		t.Fatalf("failed to list proposers: %v", err)
	}
	if len(proposers) != 1 || proposers[0].ProposerType != store.ProposerLead {
		t.Errorf("got proposers %+v, want one lead sponsor", proposers)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	s := testutil.SetupTestStore(t)

	_, err := ingest.Load(context.Background(), s, t.TempDir())
	if err == nil {
		t.Fatal("expected an error for a directory without snapshot files")
	}
}

func TestLoad_Idempotent(t *testing.T) {
	s := testutil.SetupTestStore(t)
	dir := setupSnapshotDir(t)
	ctx := context.Background()

	first, err := ingest.Load(ctx, s, dir)
	if err != nil {
		t.Fatalf("failed to load snapshot: %v", err)
	}
	second, err := ingest.Load(ctx, s, dir)
	if err != nil {
		t.Fatalf("failed to reload snapshot: %v", err)
	}

	if first.Counts != second.Counts {
		t.Errorf("reload changed counts: %+v vs %+v", first.Counts, second.Counts)
	}
}
