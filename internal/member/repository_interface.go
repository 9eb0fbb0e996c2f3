package member

import (
	"context"
	"time"

	"gymdesk/internal/invoice"
)

// RenewUpdate carries the new plan window written onto a member at renewal.
type RenewUpdate struct {
	PlanType  PlanType
	StartDate time.Time
	EndDate   time.Time
	Amount    float64
}

// ServiceRenewal carries the new window and price for an isolated PT renewal.
type ServiceRenewal struct {
	StartDate *time.Time
	EndDate   *time.Time
	Amount    float64
}

// Repository persists members and their services. Every method that pairs a
// write with an invoice runs as a single transaction.
type Repository interface {
	CreateWithInvoice(ctx context.Context, m *Member, services []NewServiceRow, draft invoice.Draft) (*Member, *invoice.Invoice, error)
	RenewWithInvoice(ctx context.Context, gymID, memberID int, upd RenewUpdate, services []NewServiceRow, draft invoice.Draft) (*Member, *invoice.Invoice, error)
	AddServicesWithInvoice(ctx context.Context, gymID, memberID int, services []NewServiceRow, draft *invoice.Draft) ([]MemberService, *invoice.Invoice, error)
	RenewServiceWithInvoice(ctx context.Context, gymID, memberID, serviceID int, upd ServiceRenewal, draft invoice.Draft) (*MemberService, *invoice.Invoice, error)

	GetByID(ctx context.Context, gymID, id int) (*Member, error)
	ListByGym(ctx context.Context, gymID int) ([]MemberWithServices, error)
	ListServices(ctx context.Context, memberID int) ([]MemberService, error)
	ListActiveServices(ctx context.Context, memberID int) ([]MemberService, error)
	GetServiceByID(ctx context.Context, memberID, serviceID int) (*MemberService, error)
	UpdateProfile(ctx context.Context, gymID, id int, name, phone string, dob *time.Time) (*Member, error)
	Delete(ctx context.Context, gymID, id int) error
	ListPT(ctx context.Context, gymID int) ([]PTRosterEntry, error)
}
