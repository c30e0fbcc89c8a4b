package analysis

import (
	"github.com/billwatch/billwatch/internal/store"
)

// CoSponsorship summarizes the proposers of one bill after joining
// each proposer to their member party affiliation. PartyTally and
// ProposerIDs are separate fields; the original aggregation assigned
// both to the same output column and let the second assignment win.
type CoSponsorship struct {
	BillID      string         `json:"bill_id"`
	Parties     []string       `json:"parties"`      // distinct, in join-encounter order
	PartyTally  map[string]int `json:"party_tally"`  // proposers per party
	ProposerIDs []string       `json:"proposer_ids"` // in join-encounter order
}

// CrossParty reports whether the bill's proposers span more than one
// distinct party.
func (c CoSponsorship) CrossParty() bool {
	return len(c.Parties) > 1
}

// JoinSponsorships joins proposers to member party affiliations and
// groups by bill. Proposers whose member id has no matching member
// record are dropped (inner-join semantics); they still appear in
// nothing here, not under a synthetic unknown party. Bill order
// follows first encounter in the proposer collection.
func JoinSponsorships(proposers []*store.Proposer, members []*store.Member) []CoSponsorship {
	memberParty := make(map[string]string, len(members))
	for _, m := range members {
		memberParty[m.ID] = CanonicalParty(m.Party)
	}

	byBill := make(map[string]*CoSponsorship)
	var order []string

	for _, p := range proposers {
		party, ok := memberParty[p.ProposerID]
		if !ok {
			continue
		}

		cs, exists := byBill[p.BillID]
		if !exists {
			cs = &CoSponsorship{
				BillID:     p.BillID,
				PartyTally: make(map[string]int),
			}
			byBill[p.BillID] = cs
			order = append(order, p.BillID)
		}

		cs.ProposerIDs = append(cs.ProposerIDs, p.ProposerID)
		if party != "" {
			if cs.PartyTally[party] == 0 {
				cs.Parties = append(cs.Parties, party)
			}
			cs.PartyTally[party]++
		}
	}

	result := make([]CoSponsorship, len(order))
	for i, id := range order {
		result[i] = *byBill[id]
	}
	return result
}

// CrossPartyBill is a cross-party co-sponsored bill joined back to its
// full bill record for downstream tabulation.
type CrossPartyBill struct {
	Bill        *store.Bill    `json:"bill"`
	Parties     []string       `json:"parties"`
	PartyTally  map[string]int `json:"party_tally"`
	ProposerIDs []string       `json:"proposer_ids"`
}

// CrossPartyBills returns the subset of bills co-sponsored by members
// of more than one party, in sponsorship-join order.
func CrossPartyBills(bills []*store.Bill, proposers []*store.Proposer, members []*store.Member) []CrossPartyBill {
	billByID := make(map[string]*store.Bill, len(bills))
	for _, b := range bills {
		billByID[b.BillID] = b
	}

	var result []CrossPartyBill
	for _, cs := range JoinSponsorships(proposers, members) {
		if !cs.CrossParty() {
			continue
		}
		bill, ok := billByID[cs.BillID]
		if !ok {
			continue
		}
		result = append(result, CrossPartyBill{
			Bill:        bill,
			Parties:     cs.Parties,
			PartyTally:  cs.PartyTally,
			ProposerIDs: cs.ProposerIDs,
		})
	}
	return result
}
