package ingest_test

import (
	"testing"

	"github.com/billwatch/billwatch/internal/ingest"
	"github.com/billwatch/billwatch/internal/store"
)

func rawBill(id, no, name string) *ingest.RawBill {
	return &ingest.RawBill{
		BillID:   id,
		BillNo:   no,
		BillName: name,
	}
}

func TestValidateBill_Complete(t *testing.T) {
	b := rawBill("B1", "2100001", "Tax Reform Act")
	b.DocTitle = "2100001_Tax Reform Act"

	if vs := ingest.ValidateBill(b); len(vs) != 0 {
		t.Errorf("expected no violations, got %v", vs)
	}
}

func TestValidateBill_MissingFields(t *testing.T) {
	vs := ingest.ValidateBill(rawBill("B1", "", ""))
	if len(vs) != 2 {
		t.Fatalf("got %d violations, want 2", len(vs))
	}

	fields := map[string]bool{}
	for _, v := range vs {
		fields[v.Field] = true
		if v.BillID != "B1" {
			t.Errorf("violation must carry the bill id, got %q", v.BillID)
		}
	}
	if !fields["BILL_NO"] || !fields["BILL_NAME"] {
		t.Errorf("expected BILL_NO and BILL_NAME violations, got %v", vs)
	}
}

func TestValidateBill_TitlePrefixMismatch(t *testing.T) {
	b := rawBill("B1", "2100001", "Tax Reform Act")
	b.DocTitle = "2100999_Tax Reform Act"

	vs := ingest.ValidateBill(b)
	if len(vs) != 1 || vs[0].Field != "DOC_TITLE" {
		t.Fatalf("expected one DOC_TITLE violation, got %v", vs)
	}
}

func TestValidateBill_AlternativeFlagMismatch(t *testing.T) {
	b := rawBill("B1", "2100001", "Tax Reform Act")
	b.DocTitle = "2100001_Tax Reform Act(대안)"
	b.IsAlternative = false

	vs := ingest.ValidateBill(b)
	if len(vs) != 1 || vs[0].Field != "IS_ALTERNATIVE" {
		t.Fatalf("expected one IS_ALTERNATIVE violation, got %v", vs)
	}

	b.IsAlternative = true
	if vs := ingest.ValidateBill(b); len(vs) != 0 {
		t.Errorf("marker and flag agree, expected no violations, got %v", vs)
	}
}

func TestValidateBills_ContinuesPastViolations(t *testing.T) {
	bills := []*ingest.RawBill{
		rawBill("B1", "2100001", "Tax Reform Act"),
		rawBill("B2", "", "Broken Bill"),
		rawBill("B3", "2100003", "Privacy Act"),
	}

	valid, violations := ingest.ValidateBills(bills)

	if len(valid) != 2 {
		t.Fatalf("got %d valid bills, want 2", len(valid))
	}
	if valid[0].BillID != "B1" || valid[1].BillID != "B3" {
		t.Errorf("valid records out of order: %s, %s", valid[0].BillID, valid[1].BillID)
	}
	if len(violations) != 1 || violations[0].BillID != "B2" {
		t.Errorf("expected one violation for B2, got %v", violations)
	}
}

func TestMapStatus(t *testing.T) {
	tests := []struct {
		label string
		want  store.BillStatus
	}{
		{"원안가결", store.StatusOriginalPassed},
		{"수정가결", store.StatusAmendedPassed},
		{"철회", store.StatusWithdrawn},
		{"대안반영폐기", store.StatusAlternativeDiscarded},
		{string(store.StatusRejected), store.StatusRejected},
		{"no such label", store.StatusOther},
		{"", store.StatusOther},
	}

	for _, tt := range tests {
		if got := ingest.MapStatus(tt.label); got != tt.want {
			t.Errorf("MapStatus(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}

func TestMapProposerType(t *testing.T) {
	tests := []struct {
		label string
		want  store.ProposerType
	}{
		{"의원대표", store.ProposerLead},
		{"의원공동", store.ProposerCo},
		{"정부", store.ProposerGovernment},
		{"위원장", store.ProposerCommittee},
		{string(store.ProposerLead), store.ProposerLead},
		{"unknown", store.ProposerCo},
	}

	for _, tt := range tests {
		if got := ingest.MapProposerType(tt.label); got != tt.want {
			t.Errorf("MapProposerType(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}
