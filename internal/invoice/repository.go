package invoice

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) InsertTx(ctx context.Context, tx *sqlx.Tx, inv *Invoice) (*Invoice, error) {
	query := `
		INSERT INTO invoices (gym_id, member_id, invoice_number, amount, date, payment_status, invoice_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, gym_id, member_id, invoice_number, amount, date, payment_status, invoice_type, created_at
	`

	var created Invoice
	err := tx.QueryRowxContext(ctx, query,
		inv.GymID, inv.MemberID, inv.InvoiceNumber, inv.Amount, inv.Date, inv.PaymentStatus, inv.InvoiceType,
	).StructScan(&created)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) NextNumber(ctx context.Context, gymID int) (string, error) {
	query := `
		INSERT INTO invoice_counters (gym_id, last_value)
		VALUES ($1, 1)
		ON CONFLICT (gym_id) DO UPDATE SET last_value = invoice_counters.last_value + 1
		RETURNING last_value
	`

	var seq int64
	if err := r.db.GetContext(ctx, &seq, query, gymID); err != nil {
		return "", err
	}

	return fmt.Sprintf("INV-%d-%06d", gymID, seq), nil
}

const invoiceWithMemberColumns = `
	i.id, i.gym_id, i.member_id, i.invoice_number, i.amount, i.date,
	i.payment_status, i.invoice_type, i.created_at,
	COALESCE(m.name, '')      AS member_name,
	COALESCE(m.phone, '')     AS member_phone,
	COALESCE(m.plan_type, '') AS plan_type
`

func (r *repository) ListByGym(ctx context.Context, gymID int) ([]InvoiceWithMember, error) {
	query := `
		SELECT ` + invoiceWithMemberColumns + `
		FROM invoices i
		LEFT JOIN members m ON m.id = i.member_id
		WHERE i.gym_id = $1
		ORDER BY i.created_at DESC
	`

	invoices := []InvoiceWithMember{}
	if err := r.db.SelectContext(ctx, &invoices, query, gymID); err != nil {
		return nil, err
	}

	return invoices, nil
}

func (r *repository) ListByMember(ctx context.Context, gymID, memberID int) ([]InvoiceWithMember, error) {
	query := `
		SELECT ` + invoiceWithMemberColumns + `
		FROM invoices i
		LEFT JOIN members m ON m.id = i.member_id
		WHERE i.gym_id = $1 AND i.member_id = $2
		ORDER BY i.created_at DESC
	`

	invoices := []InvoiceWithMember{}
	if err := r.db.SelectContext(ctx, &invoices, query, gymID, memberID); err != nil {
		return nil, err
	}

	return invoices, nil
}

func (r *repository) GetByID(ctx context.Context, gymID, id int) (*InvoiceWithMember, error) {
	query := `
		SELECT ` + invoiceWithMemberColumns + `
		FROM invoices i
		LEFT JOIN members m ON m.id = i.member_id
		WHERE i.gym_id = $1 AND i.id = $2
	`

	var inv InvoiceWithMember
	if err := r.db.GetContext(ctx, &inv, query, gymID, id); err != nil {
		return nil, err
	}

	return &inv, nil
}
