package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/billwatch/billwatch/internal/store"
)

// Snapshot file names as written by the preprocessing step.
const (
	BillsFile     = "bills.json"
	DetailsFile   = "bill_details.json"
	ProposersFile = "proposer_bills.json"
	MembersFile   = "members.json"
)

// LoadReport summarizes one snapshot import.
type LoadReport struct {
	Counts     store.RecordCounts
	Skipped    int
	Violations []SchemaViolation
}

// Load reads a snapshot directory, validates the bill records, and
// inserts everything into the store. Records failing validation are
// skipped and reported; the rest of the batch loads normally.
func Load(ctx context.Context, s store.Store, dataDir string) (*LoadReport, error) {
	var rawBills []*RawBill
	if err := readJSON(filepath.Join(dataDir, BillsFile), &rawBills); err != nil {
		return nil, err
	}

	var rawDetails []*RawBillDetail
	if err := readJSON(filepath.Join(dataDir, DetailsFile), &rawDetails); err != nil {
		return nil, err
	}

	var rawProposers []*RawProposer
	if err := readJSON(filepath.Join(dataDir, ProposersFile), &rawProposers); err != nil {
		return nil, err
	}

	var rawMembers []*RawMember
	if err := readJSON(filepath.Join(dataDir, MembersFile), &rawMembers); err != nil {
		return nil, err
	}

	validBills, violations := ValidateBills(rawBills)

	bills := make([]*store.Bill, len(validBills))
	loaded := make(map[string]bool, len(validBills))
	for i, rb := range validBills {
		bills[i] = &store.Bill{
			BillID:        rb.BillID,
			BillNo:        rb.BillNo,
			BillName:      rb.BillName,
			CommitteeName: rb.CommitteeName,
			Status:        MapStatus(rb.Status),
			ProposerKind:  rb.ProposerKind,
			ProposeDate:   rb.ProposeDate,
			ProcDate:      rb.ProcDate,
		}
		loaded[rb.BillID] = true
	}

	// Details and proposers for skipped bills are dropped with them.
	var details []*store.BillDetail
	for _, rd := range rawDetails {
		if !loaded[rd.BillID] {
			continue
		}
		details = append(details, &store.BillDetail{
			BillID:         rd.BillID,
			ProcResult:     MapStatus(rd.ProcResult),
			CommitteeDate:  rd.CommitteeDate,
			CmtPresentDate: rd.CmtPresentDate,
			CmtProcDate:    rd.CmtProcDate,
			LawSubmitDate:  rd.LawSubmitDate,
			LawPresentDate: rd.LawPresentDate,
			LawProcDate:    rd.LawProcDate,
			ProcDate:       rd.ProcDate,
		})
	}

	var proposers []*store.Proposer
	for _, rp := range rawProposers {
		if !loaded[rp.BillID] {
			continue
		}
		proposers = append(proposers, &store.Proposer{
			BillID:       rp.BillID,
			ProposerID:   rp.ProposerID,
			ProposerType: MapProposerType(rp.ProposerType),
		})
	}

	members := make([]*store.Member, len(rawMembers))
	for i, rm := range rawMembers {
		members[i] = &store.Member{
			ID:        rm.ID,
			Name:      rm.Name,
			Party:     rm.Party,
			Committee: rm.Committee,
		}
	}

	if err := s.InsertBills(ctx, bills); err != nil {
		return nil, fmt.Errorf("failed to load bills: %w", err)
	}
	if err := s.InsertBillDetails(ctx, details); err != nil {
		return nil, fmt.Errorf("failed to load bill details: %w", err)
	}
	if err := s.InsertProposers(ctx, proposers); err != nil {
		return nil, fmt.Errorf("failed to load proposers: %w", err)
	}
	if err := s.InsertMembers(ctx, members); err != nil {
		return nil, fmt.Errorf("failed to load members: %w", err)
	}

	counts, err := s.Counts(ctx)
	if err != nil {
		return nil, err
	}

	return &LoadReport{
		Counts:     counts,
		Skipped:    len(rawBills) - len(validBills),
		Violations: violations,
	}, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return nil
}
