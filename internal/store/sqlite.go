package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("not found")

type SQLiteStore struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS bills (
    bill_id TEXT PRIMARY KEY,
    bill_no TEXT NOT NULL,
    bill_name TEXT NOT NULL,
    committee_name TEXT,
    status TEXT NOT NULL,
    proposer_kind TEXT,
    propose_dt TEXT,
    proc_dt TEXT
);

CREATE INDEX IF NOT EXISTS idx_bills_committee ON bills(committee_name);
CREATE INDEX IF NOT EXISTS idx_bills_status ON bills(status);

CREATE TABLE IF NOT EXISTS bill_details (
    bill_id TEXT PRIMARY KEY,
    proc_result TEXT NOT NULL,
    committee_dt TEXT,
    cmt_present_dt TEXT,
    cmt_proc_dt TEXT,
    law_submit_dt TEXT,
    law_present_dt TEXT,
    law_proc_dt TEXT,
    proc_dt TEXT,
    FOREIGN KEY (bill_id) REFERENCES bills(bill_id)
);

CREATE TABLE IF NOT EXISTS bill_proposers (
    bill_id TEXT NOT NULL,
    proposer_id TEXT NOT NULL,
    proposer_type TEXT NOT NULL,
    FOREIGN KEY (bill_id) REFERENCES bills(bill_id)
);

CREATE INDEX IF NOT EXISTS idx_proposers_bill ON bill_proposers(bill_id);
CREATE INDEX IF NOT EXISTS idx_proposers_member ON bill_proposers(proposer_id);
CREATE UNIQUE INDEX IF NOT EXISTS idx_proposers_dedup ON bill_proposers(bill_id, proposer_id, proposer_type);

CREATE TABLE IF NOT EXISTS members (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    party TEXT,
    committee TEXT
);
`

func Open(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Apply schema
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) InsertBills(ctx context.Context, bills []*Bill) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO bills (bill_id, bill_no, bill_name, committee_name, status, proposer_kind, propose_dt, proc_dt)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, b := range bills {
		_, err := stmt.ExecContext(ctx,
			b.BillID, b.BillNo, b.BillName, nullable(b.CommitteeName),
			string(b.Status), b.ProposerKind, nullable(b.ProposeDate), nullable(b.ProcDate))
		if err != nil {
			return fmt.Errorf("failed to insert bill %s: %w", b.BillID, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) InsertBillDetails(ctx context.Context, details []*BillDetail) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO bill_details (bill_id, proc_result, committee_dt, cmt_present_dt, cmt_proc_dt, law_submit_dt, law_present_dt, law_proc_dt, proc_dt)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, d := range details {
		_, err := stmt.ExecContext(ctx,
			d.BillID, string(d.ProcResult),
			nullable(d.CommitteeDate), nullable(d.CmtPresentDate), nullable(d.CmtProcDate),
			nullable(d.LawSubmitDate), nullable(d.LawPresentDate), nullable(d.LawProcDate),
			nullable(d.ProcDate))
		if err != nil {
			return fmt.Errorf("failed to insert detail %s: %w", d.BillID, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) InsertProposers(ctx context.Context, proposers []*Proposer) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Dedup handled by the unique index
	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO bill_proposers (bill_id, proposer_id, proposer_type)
		 VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range proposers {
		if _, err := stmt.ExecContext(ctx, p.BillID, p.ProposerID, string(p.ProposerType)); err != nil {
			return fmt.Errorf("failed to insert proposer %s/%s: %w", p.BillID, p.ProposerID, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) InsertMembers(ctx context.Context, members []*Member) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO members (id, name, party, committee)
		 VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, m := range members {
		if _, err := stmt.ExecContext(ctx, m.ID, m.Name, nullable(m.Party), nullable(m.Committee)); err != nil {
			return fmt.Errorf("failed to insert member %s: %w", m.ID, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) ListBills(ctx context.Context) ([]*Bill, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT bill_id, bill_no, bill_name, committee_name, status, proposer_kind, propose_dt, proc_dt
		 FROM bills ORDER BY bill_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	var bills []*Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		bills = append(bills, b)
	}

	return bills, rows.Err()
}

func (s *SQLiteStore) ListBillDetails(ctx context.Context) ([]*BillDetail, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT bill_id, proc_result, committee_dt, cmt_present_dt, cmt_proc_dt, law_submit_dt, law_present_dt, law_proc_dt, proc_dt
		 FROM bill_details ORDER BY bill_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list bill details: %w", err)
	}
	defer rows.Close()

	var details []*BillDetail
	for rows.Next() {
		var d BillDetail
		var status string
		var committee, cmtPresent, cmtProc, lawSubmit, lawPresent, lawProc, proc sql.NullString

		err := rows.Scan(&d.BillID, &status, &committee, &cmtPresent, &cmtProc, &lawSubmit, &lawPresent, &lawProc, &proc)
		if err != nil {
			return nil, fmt.Errorf("failed to scan detail: %w", err)
		}

		d.ProcResult = BillStatus(status)
		d.CommitteeDate = committee.String
		d.CmtPresentDate = cmtPresent.String
		d.CmtProcDate = cmtProc.String
		d.LawSubmitDate = lawSubmit.String
		d.LawPresentDate = lawPresent.String
		d.LawProcDate = lawProc.String
		d.ProcDate = proc.String

		details = append(details, &d)
	}

	return details, rows.Err()
}

func (s *SQLiteStore) ListProposers(ctx context.Context) ([]*Proposer, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT bill_id, proposer_id, proposer_type FROM bill_proposers ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to list proposers: %w", err)
	}
	defer rows.Close()

	var proposers []*Proposer
	for rows.Next() {
		var p Proposer
		var ptype string
		if err := rows.Scan(&p.BillID, &p.ProposerID, &ptype); err != nil {
			return nil, fmt.Errorf("failed to scan proposer: %w", err)
		}
		p.ProposerType = ProposerType(ptype)
		proposers = append(proposers, &p)
	}

	return proposers, rows.Err()
}

func (s *SQLiteStore) ListMembers(ctx context.Context) ([]*Member, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, party, committee FROM members ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}

	return members, rows.Err()
}

func (s *SQLiteStore) GetMember(ctx context.Context, id string) (*Member, error) {
	var m Member
	var party, committee sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, party, committee FROM members WHERE id = ?`, id,
	).Scan(&m.ID, &m.Name, &party, &committee)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	m.Party = party.String
	m.Committee = committee.String
	return &m, nil
}

// GetBillsByMember returns every bill the member proposed, joined with
// the role they played on it.
func (s *SQLiteStore) GetBillsByMember(ctx context.Context, memberID string) ([]*MemberBill, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT b.bill_id, b.bill_no, b.bill_name, b.committee_name, b.status, b.proposer_kind, b.propose_dt, b.proc_dt, bp.proposer_type
		FROM bills b
		JOIN bill_proposers bp ON b.bill_id = bp.bill_id
		WHERE bp.proposer_id = ?
		ORDER BY b.bill_id
	`, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bills for member: %w", err)
	}
	defer rows.Close()

	var bills []*MemberBill
	for rows.Next() {
		var mb MemberBill
		var committee, proposeDt, procDt sql.NullString
		var status, ptype string

		err := rows.Scan(&mb.BillID, &mb.BillNo, &mb.BillName, &committee, &status, &mb.ProposerKind, &proposeDt, &procDt, &ptype)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member bill: %w", err)
		}

		mb.CommitteeName = committee.String
		mb.Status = BillStatus(status)
		mb.ProposeDate = proposeDt.String
		mb.ProcDate = procDt.String
		mb.ProposerType = ProposerType(ptype)

		bills = append(bills, &mb)
	}

	return bills, rows.Err()
}

func (s *SQLiteStore) Counts(ctx context.Context) (RecordCounts, error) {
	var c RecordCounts
	row := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM bills),
			(SELECT COUNT(*) FROM bill_details),
			(SELECT COUNT(*) FROM bill_proposers),
			(SELECT COUNT(*) FROM members)
	`)
	if err := row.Scan(&c.Bills, &c.Details, &c.Proposers, &c.Members); err != nil {
		return c, fmt.Errorf("failed to count records: %w", err)
	}
	return c, nil
}

// DB returns the underlying database connection for health checks
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

func scanBill(rows *sql.Rows) (*Bill, error) {
	var b Bill
	var committee, proposeDt, procDt sql.NullString
	var status string

	err := rows.Scan(&b.BillID, &b.BillNo, &b.BillName, &committee, &status, &b.ProposerKind, &proposeDt, &procDt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan bill: %w", err)
	}

	b.CommitteeName = committee.String
	b.Status = BillStatus(status)
	b.ProposeDate = proposeDt.String
	b.ProcDate = procDt.String
	return &b, nil
}

func scanMember(rows *sql.Rows) (*Member, error) {
	var m Member
	var party, committee sql.NullString

	if err := rows.Scan(&m.ID, &m.Name, &party, &committee); err != nil {
		return nil, fmt.Errorf("failed to scan member: %w", err)
	}

	m.Party = party.String
	m.Committee = committee.String
	return &m, nil
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
