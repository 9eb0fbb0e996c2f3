package invoice

import "time"

type PaymentStatus string

const (
	StatusPaid    PaymentStatus = "Paid"
	StatusPending PaymentStatus = "Pending"
	StatusOverdue PaymentStatus = "Overdue"
)

const (
	TypeMembership = "membership"
	TypeRenewal    = "renewal"
	TypeService    = "service"
)

// Invoice rows are immutable once written; there is no update path.
type Invoice struct {
	ID            int           `db:"id" json:"id"`
	GymID         int           `db:"gym_id" json:"gym_id"`
	MemberID      *int          `db:"member_id" json:"member_id,omitempty"`
	InvoiceNumber string        `db:"invoice_number" json:"invoice_number"`
	Amount        float64       `db:"amount" json:"amount"`
	Date          time.Time     `db:"date" json:"date"`
	PaymentStatus PaymentStatus `db:"payment_status" json:"payment_status"`
	InvoiceType   string        `db:"invoice_type" json:"invoice_type"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
}

// Draft is an invoice about to be written as part of a member action.
type Draft struct {
	MemberID int
	Number   string
	Amount   float64
	Date     time.Time
	Status   PaymentStatus
	Type     string
}

type InvoiceWithMember struct {
	Invoice
	MemberName  string `db:"member_name" json:"member_name"`
	MemberPhone string `db:"member_phone" json:"member_phone"`
	PlanType    string `db:"plan_type" json:"plan_type"`
}

// MemberGroup is a member's invoice history with per-status totals, the shape
// the invoices screen renders.
type MemberGroup struct {
	MemberID      int                 `json:"member_id"`
	MemberName    string              `json:"member_name"`
	MemberPhone   string              `json:"member_phone"`
	Invoices      []InvoiceWithMember `json:"invoices"`
	TotalAmount   float64             `json:"total_amount"`
	PaidAmount    float64             `json:"paid_amount"`
	PendingAmount float64             `json:"pending_amount"`
	OverdueAmount float64             `json:"overdue_amount"`
}
