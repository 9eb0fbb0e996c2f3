package member

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymdesk/internal/invoice"
)

func setupMemberMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB, invoice.NewRepository(sqlxDB))

	closer := func() { sqlxDB.Close() }
	return repo, mock, closer
}

var memberCols = []string{"id", "gym_id", "name", "phone", "dob", "plan_type", "start_date", "end_date", "amount", "is_active", "created_at"}
var serviceCols = []string{"id", "member_id", "service_name", "service_type", "amount", "start_date", "end_date", "is_active", "created_at"}
var invoiceCols = []string{"id", "gym_id", "member_id", "invoice_number", "amount", "date", "payment_status", "invoice_type", "created_at"}

func TestCreateWithInvoice(t *testing.T) {
	repo, mock, close := setupMemberMock(t)
	defer close()

	ctx := context.Background()
	now := time.Now()
	start := date(2024, time.June, 1)
	end := date(2024, time.July, 1)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO members")).
		WithArgs(1, "Ravi", "987", nil, PlanMonthly, start, end, 1000.0).
		WillReturnRows(sqlmock.NewRows(memberCols).
			AddRow(7, 1, "Ravi", "987", nil, "Monthly", start, end, 1000.0, true, now))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO member_services")).
		WithArgs(7, PTServiceName, ServiceTypePT, 500.0, nil, nil).
		WillReturnRows(sqlmock.NewRows(serviceCols).
			AddRow(11, 7, PTServiceName, "pt", 500.0, nil, nil, true, now))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO invoices")).
		WithArgs(1, 7, "INV-1-000001", 1500.0, start, invoice.StatusPaid, invoice.TypeMembership).
		WillReturnRows(sqlmock.NewRows(invoiceCols).
			AddRow(3, 1, 7, "INV-1-000001", 1500.0, start, "Paid", "membership", now))
	mock.ExpectCommit()

	m := &Member{GymID: 1, Name: "Ravi", Phone: "987", PlanType: PlanMonthly, StartDate: start, EndDate: end, Amount: 1000}
	services := []NewServiceRow{{Name: PTServiceName, Type: ServiceTypePT, Amount: 500}}
	draft := invoice.Draft{Number: "INV-1-000001", Amount: 1500, Date: start, Status: invoice.StatusPaid, Type: invoice.TypeMembership}

	created, inv, err := repo.CreateWithInvoice(ctx, m, services, draft)
	require.NoError(t, err)
	assert.Equal(t, 7, created.ID)
	assert.Equal(t, "INV-1-000001", inv.InvoiceNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRenewWithInvoiceReplacesServices(t *testing.T) {
	repo, mock, close := setupMemberMock(t)
	defer close()

	ctx := context.Background()
	now := time.Now()
	start := date(2024, time.July, 2)
	end := date(2024, time.October, 2)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE members")).
		WithArgs(PlanQuarterly, start, end, 2500.0, 7, 1).
		WillReturnRows(sqlmock.NewRows(memberCols).
			AddRow(7, 1, "Ravi", "987", nil, "Quarterly", start, end, 2500.0, true, now))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM member_services WHERE member_id = $1")).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO invoices")).
		WithArgs(1, 7, "INV-1-000002", 2500.0, start, invoice.StatusPaid, invoice.TypeRenewal).
		WillReturnRows(sqlmock.NewRows(invoiceCols).
			AddRow(4, 1, 7, "INV-1-000002", 2500.0, start, "Paid", "renewal", now))
	mock.ExpectCommit()

	upd := RenewUpdate{PlanType: PlanQuarterly, StartDate: start, EndDate: end, Amount: 2500}
	draft := invoice.Draft{Number: "INV-1-000002", Amount: 2500, Date: start, Status: invoice.StatusPaid, Type: invoice.TypeRenewal}

	updated, inv, err := repo.RenewWithInvoice(ctx, 1, 7, upd, nil, draft)
	require.NoError(t, err)
	assert.Equal(t, PlanQuarterly, updated.PlanType)
	assert.Equal(t, 2500.0, inv.Amount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRenewWithInvoiceRollsBackOnFailure(t *testing.T) {
	repo, mock, close := setupMemberMock(t)
	defer close()

	ctx := context.Background()
	now := time.Now()
	start := date(2024, time.July, 2)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE members")).
		WillReturnRows(sqlmock.NewRows(memberCols).
			AddRow(7, 1, "Ravi", "987", nil, "Monthly", start, start, 1000.0, true, now))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM member_services WHERE member_id = $1")).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO member_services")).
		WillReturnError(errors.New("insert failed"))
	mock.ExpectRollback()

	upd := RenewUpdate{PlanType: PlanMonthly, StartDate: start, EndDate: start, Amount: 1000}
	services := []NewServiceRow{{Name: "Sauna", Type: ServiceTypeOther, Amount: 100}}

	_, _, err := repo.RenewWithInvoice(ctx, 1, 7, upd, services, invoice.Draft{})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddServicesWithInvoiceNoDraft(t *testing.T) {
	repo, mock, close := setupMemberMock(t)
	defer close()

	ctx := context.Background()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO member_services")).
		WithArgs(7, "Towel Service", ServiceTypeOther, 0.0, nil, nil).
		WillReturnRows(sqlmock.NewRows(serviceCols).
			AddRow(12, 7, "Towel Service", "other", 0.0, nil, nil, true, now))
	mock.ExpectCommit()

	inserted, inv, err := repo.AddServicesWithInvoice(ctx, 1, 7,
		[]NewServiceRow{{Name: "Towel Service", Type: ServiceTypeOther}}, nil)
	require.NoError(t, err)
	require.Len(t, inserted, 1)
	assert.Nil(t, inv)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDScopedToGym(t *testing.T) {
	repo, mock, close := setupMemberMock(t)
	defer close()

	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("FROM members WHERE gym_id = $1 AND id = $2")).
		WithArgs(2, 7).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(ctx, 2, 7)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMember(t *testing.T) {
	repo, mock, close := setupMemberMock(t)
	defer close()

	ctx := context.Background()

	t.Run("Deletes scoped row", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM members WHERE id = $1 AND gym_id = $2")).
			WithArgs(7, 1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, 1, 7))
	})

	t.Run("Missing row reports no rows", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM members WHERE id = $1 AND gym_id = $2")).
			WithArgs(8, 1).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, 1, 8), sql.ErrNoRows)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
