package member

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"gymdesk/internal/invoice"
)

type repository struct {
	db       *sqlx.DB
	invoices invoice.TxWriter
}

func NewRepository(db *sqlx.DB, invoices invoice.TxWriter) Repository {
	return &repository{db: db, invoices: invoices}
}

const memberColumns = `id, gym_id, name, phone, dob, plan_type, start_date, end_date, amount, is_active, created_at`
const serviceColumns = `id, member_id, service_name, service_type, amount, start_date, end_date, is_active, created_at`

func (r *repository) CreateWithInvoice(ctx context.Context, m *Member, services []NewServiceRow, draft invoice.Draft) (*Member, *invoice.Invoice, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO members (gym_id, name, phone, dob, plan_type, start_date, end_date, amount, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE)
		RETURNING ` + memberColumns + `
	`

	var created Member
	err = tx.QueryRowxContext(ctx, query,
		m.GymID, m.Name, m.Phone, m.DOB, m.PlanType, m.StartDate, m.EndDate, m.Amount,
	).StructScan(&created)
	if err != nil {
		return nil, nil, err
	}

	if err := insertServicesTx(ctx, tx, created.ID, services); err != nil {
		return nil, nil, err
	}

	inv, err := r.insertDraftTx(ctx, tx, m.GymID, created.ID, draft)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}

	return &created, inv, nil
}

func (r *repository) RenewWithInvoice(ctx context.Context, gymID, memberID int, upd RenewUpdate, services []NewServiceRow, draft invoice.Draft) (*Member, *invoice.Invoice, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	query := `
		UPDATE members
		SET plan_type = $1, start_date = $2, end_date = $3, amount = $4, is_active = TRUE
		WHERE id = $5 AND gym_id = $6
		RETURNING ` + memberColumns + `
	`

	var updated Member
	err = tx.QueryRowxContext(ctx, query,
		upd.PlanType, upd.StartDate, upd.EndDate, upd.Amount, memberID, gymID,
	).StructScan(&updated)
	if err != nil {
		return nil, nil, err
	}

	// Destructive replace: the renewal form is the new truth, old add-ons are
	// not carried over.
	if _, err := tx.ExecContext(ctx, `DELETE FROM member_services WHERE member_id = $1`, memberID); err != nil {
		return nil, nil, err
	}

	if err := insertServicesTx(ctx, tx, memberID, services); err != nil {
		return nil, nil, err
	}

	inv, err := r.insertDraftTx(ctx, tx, gymID, memberID, draft)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}

	return &updated, inv, nil
}

func (r *repository) AddServicesWithInvoice(ctx context.Context, gymID, memberID int, services []NewServiceRow, draft *invoice.Draft) ([]MemberService, *invoice.Invoice, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	inserted, err := insertServicesReturningTx(ctx, tx, memberID, services)
	if err != nil {
		return nil, nil, err
	}

	var inv *invoice.Invoice
	if draft != nil {
		inv, err = r.insertDraftTx(ctx, tx, gymID, memberID, *draft)
		if err != nil {
			return nil, nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}

	return inserted, inv, nil
}

func (r *repository) RenewServiceWithInvoice(ctx context.Context, gymID, memberID, serviceID int, upd ServiceRenewal, draft invoice.Draft) (*MemberService, *invoice.Invoice, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	query := `
		UPDATE member_services
		SET start_date = $1, end_date = $2, amount = $3, is_active = TRUE
		WHERE id = $4 AND member_id = $5
		RETURNING ` + serviceColumns + `
	`

	var updated MemberService
	err = tx.QueryRowxContext(ctx, query,
		upd.StartDate, upd.EndDate, upd.Amount, serviceID, memberID,
	).StructScan(&updated)
	if err != nil {
		return nil, nil, err
	}

	inv, err := r.insertDraftTx(ctx, tx, gymID, memberID, draft)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}

	return &updated, inv, nil
}

func (r *repository) insertDraftTx(ctx context.Context, tx *sqlx.Tx, gymID, memberID int, draft invoice.Draft) (*invoice.Invoice, error) {
	return r.invoices.InsertTx(ctx, tx, &invoice.Invoice{
		GymID:         gymID,
		MemberID:      &memberID,
		InvoiceNumber: draft.Number,
		Amount:        draft.Amount,
		Date:          draft.Date,
		PaymentStatus: draft.Status,
		InvoiceType:   draft.Type,
	})
}

func insertServicesTx(ctx context.Context, tx *sqlx.Tx, memberID int, services []NewServiceRow) error {
	_, err := insertServicesReturningTx(ctx, tx, memberID, services)
	return err
}

func insertServicesReturningTx(ctx context.Context, tx *sqlx.Tx, memberID int, services []NewServiceRow) ([]MemberService, error) {
	query := `
		INSERT INTO member_services (member_id, service_name, service_type, amount, start_date, end_date, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		RETURNING ` + serviceColumns + `
	`

	inserted := make([]MemberService, 0, len(services))
	for _, s := range services {
		var row MemberService
		err := tx.QueryRowxContext(ctx, query,
			memberID, s.Name, s.Type, s.Amount, s.StartDate, s.EndDate,
		).StructScan(&row)
		if err != nil {
			return nil, err
		}
		inserted = append(inserted, row)
	}

	return inserted, nil
}

func (r *repository) GetByID(ctx context.Context, gymID, id int) (*Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE gym_id = $1 AND id = $2`

	var m Member
	if err := r.db.GetContext(ctx, &m, query, gymID, id); err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) ListByGym(ctx context.Context, gymID int) ([]MemberWithServices, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE gym_id = $1 ORDER BY created_at DESC`

	members := []Member{}
	if err := r.db.SelectContext(ctx, &members, query, gymID); err != nil {
		return nil, err
	}

	serviceQuery := `
		SELECT ms.id, ms.member_id, ms.service_name, ms.service_type, ms.amount,
		       ms.start_date, ms.end_date, ms.is_active, ms.created_at
		FROM member_services ms
		JOIN members m ON m.id = ms.member_id
		WHERE m.gym_id = $1 AND ms.is_active = TRUE
		ORDER BY ms.created_at DESC
	`

	services := []MemberService{}
	if err := r.db.SelectContext(ctx, &services, serviceQuery, gymID); err != nil {
		return nil, err
	}

	byMember := make(map[int][]MemberService, len(members))
	for _, s := range services {
		byMember[s.MemberID] = append(byMember[s.MemberID], s)
	}

	result := make([]MemberWithServices, 0, len(members))
	for _, m := range members {
		result = append(result, MemberWithServices{
			Member:   m,
			Services: byMember[m.ID],
		})
	}

	return result, nil
}

func (r *repository) ListServices(ctx context.Context, memberID int) ([]MemberService, error) {
	query := `SELECT ` + serviceColumns + ` FROM member_services WHERE member_id = $1 ORDER BY created_at DESC`

	services := []MemberService{}
	if err := r.db.SelectContext(ctx, &services, query, memberID); err != nil {
		return nil, err
	}

	return services, nil
}

func (r *repository) ListActiveServices(ctx context.Context, memberID int) ([]MemberService, error) {
	query := `SELECT ` + serviceColumns + ` FROM member_services WHERE member_id = $1 AND is_active = TRUE ORDER BY created_at DESC`

	services := []MemberService{}
	if err := r.db.SelectContext(ctx, &services, query, memberID); err != nil {
		return nil, err
	}

	return services, nil
}

func (r *repository) GetServiceByID(ctx context.Context, memberID, serviceID int) (*MemberService, error) {
	query := `SELECT ` + serviceColumns + ` FROM member_services WHERE member_id = $1 AND id = $2`

	var s MemberService
	if err := r.db.GetContext(ctx, &s, query, memberID, serviceID); err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *repository) UpdateProfile(ctx context.Context, gymID, id int, name, phone string, dob *time.Time) (*Member, error) {
	query := `
		UPDATE members
		SET name = $1, phone = $2, dob = $3
		WHERE id = $4 AND gym_id = $5
		RETURNING ` + memberColumns + `
	`

	var m Member
	err := r.db.QueryRowxContext(ctx, query, name, phone, dob, id, gymID).StructScan(&m)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) Delete(ctx context.Context, gymID, id int) error {
	// Services go with the member (FK cascade); invoices are kept for audit
	// with member_id nulled by the schema.
	res, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = $1 AND gym_id = $2`, id, gymID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *repository) ListPT(ctx context.Context, gymID int) ([]PTRosterEntry, error) {
	query := `
		SELECT ms.id, ms.member_id, m.name AS member_name, m.phone AS member_phone,
		       ms.service_name, ms.start_date, ms.end_date, ms.amount, ms.is_active
		FROM member_services ms
		JOIN members m ON m.id = ms.member_id
		WHERE m.gym_id = $1 AND ms.service_type = 'pt'
	`

	entries := []PTRosterEntry{}
	if err := r.db.SelectContext(ctx, &entries, query, gymID); err != nil {
		return nil, err
	}

	return entries, nil
}
