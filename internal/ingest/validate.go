package ingest

import (
	"fmt"
	"strings"
)

// SchemaViolation describes one malformed source record. Violations are
// collected and reported to the caller for manual review; they never
// abort the batch.
type SchemaViolation struct {
	BillID string `json:"bill_id"`
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (v SchemaViolation) String() string {
	return fmt.Sprintf("%s: %s: %s", v.BillID, v.Field, v.Reason)
}

const alternativeMarker = "(대안)"

// ValidateBill checks one raw bill record against the snapshot schema:
// bill number and name must be present; when document metadata exists,
// the title's derived number prefix must match the declared bill number
// and the alternative marker in the title must agree with the declared
// alternative flag.
func ValidateBill(b *RawBill) []SchemaViolation {
	var violations []SchemaViolation

	if b.BillNo == "" {
		violations = append(violations, SchemaViolation{
			BillID: b.BillID,
			Field:  "BILL_NO",
			Reason: "missing bill number",
		})
	}
	if b.BillName == "" {
		violations = append(violations, SchemaViolation{
			BillID: b.BillID,
			Field:  "BILL_NAME",
			Reason: "missing title",
		})
	}

	if b.DocTitle != "" {
		// Document exports are named "<bill_no>_<title>".
		prefix, _, found := strings.Cut(b.DocTitle, "_")
		if found && b.BillNo != "" && prefix != b.BillNo {
			violations = append(violations, SchemaViolation{
				BillID: b.BillID,
				Field:  "DOC_TITLE",
				Reason: fmt.Sprintf("title number prefix %q does not match bill number %q", prefix, b.BillNo),
			})
		}

		titleAlternative := strings.Contains(b.DocTitle, alternativeMarker)
		if titleAlternative != b.IsAlternative {
			violations = append(violations, SchemaViolation{
				BillID: b.BillID,
				Field:  "IS_ALTERNATIVE",
				Reason: fmt.Sprintf("title implies alternative=%t but record declares %t", titleAlternative, b.IsAlternative),
			})
		}
	}

	return violations
}

// ValidateBills partitions raw bills into valid records and a violation
// list. A record with any violation is excluded from further
// aggregation; the remaining records continue unaffected.
func ValidateBills(bills []*RawBill) ([]*RawBill, []SchemaViolation) {
	valid := make([]*RawBill, 0, len(bills))
	var all []SchemaViolation

	for _, b := range bills {
		if vs := ValidateBill(b); len(vs) > 0 {
			all = append(all, vs...)
			continue
		}
		valid = append(valid, b)
	}

	return valid, all
}
