package store

import "context"

// Store defines the interface for snapshot storage operations
type Store interface {
	// Bulk loading
	InsertBills(ctx context.Context, bills []*Bill) error
	InsertBillDetails(ctx context.Context, details []*BillDetail) error
	InsertProposers(ctx context.Context, proposers []*Proposer) error
	InsertMembers(ctx context.Context, members []*Member) error

	// Snapshot reads
	ListBills(ctx context.Context) ([]*Bill, error)
	ListBillDetails(ctx context.Context) ([]*BillDetail, error)
	ListProposers(ctx context.Context) ([]*Proposer, error)
	ListMembers(ctx context.Context) ([]*Member, error)
	GetMember(ctx context.Context, id string) (*Member, error)
	GetBillsByMember(ctx context.Context, memberID string) ([]*MemberBill, error)
	Counts(ctx context.Context) (RecordCounts, error)

	// Lifecycle
	Close() error
}
