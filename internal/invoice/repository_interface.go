package invoice

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	// InsertTx writes an invoice inside a caller-owned transaction so member
	// actions and the invoice they raise commit or roll back together.
	InsertTx(ctx context.Context, tx *sqlx.Tx, inv *Invoice) (*Invoice, error)
	// NextNumber atomically advances the tenant's invoice counter. Runs outside
	// any transaction: a consumed number may be abandoned on rollback, but it
	// can never be issued twice.
	NextNumber(ctx context.Context, gymID int) (string, error)
	ListByGym(ctx context.Context, gymID int) ([]InvoiceWithMember, error)
	ListByMember(ctx context.Context, gymID, memberID int) ([]InvoiceWithMember, error)
	GetByID(ctx context.Context, gymID, id int) (*InvoiceWithMember, error)
}

// TxWriter is the slice of Repository the member repository needs to raise
// invoices inside its own transactions.
type TxWriter interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, inv *Invoice) (*Invoice, error)
}
