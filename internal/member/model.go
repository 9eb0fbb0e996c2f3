package member

import (
	"strconv"
	"strings"
	"time"
)

type PlanType string

const (
	PlanMonthly   PlanType = "Monthly"
	PlanQuarterly PlanType = "Quarterly"
	PlanYearly    PlanType = "Yearly"
)

type Status string

const (
	StatusActive       Status = "active"
	StatusExpiringSoon Status = "expiring-soon"
	StatusExpired      Status = "expired"
	StatusInactive     Status = "inactive"
)

const (
	ServiceTypePT    = "pt"
	ServiceTypeOther = "other"

	// PTServiceName is the distinguished name under which the single allowed
	// personal-training service is stored.
	PTServiceName = "Personal Training"

	expiringSoonWindowDays = 7
)

type Member struct {
	ID        int        `db:"id" json:"id"`
	GymID     int        `db:"gym_id" json:"gym_id"`
	Name      string     `db:"name" json:"name"`
	Phone     string     `db:"phone" json:"phone"`
	DOB       *time.Time `db:"dob" json:"dob,omitempty"`
	PlanType  PlanType   `db:"plan_type" json:"plan_type"`
	StartDate time.Time  `db:"start_date" json:"start_date"`
	EndDate   time.Time  `db:"end_date" json:"end_date"`
	Amount    float64    `db:"amount" json:"amount"`
	IsActive  bool       `db:"is_active" json:"is_active"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

type MemberService struct {
	ID          int        `db:"id" json:"id"`
	MemberID    int        `db:"member_id" json:"member_id"`
	ServiceName string     `db:"service_name" json:"service_name"`
	ServiceType string     `db:"service_type" json:"service_type"`
	Amount      float64    `db:"amount" json:"amount"`
	StartDate   *time.Time `db:"start_date" json:"start_date,omitempty"`
	EndDate     *time.Time `db:"end_date" json:"end_date,omitempty"`
	IsActive    bool       `db:"is_active" json:"is_active"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

type MemberWithServices struct {
	Member
	Services []MemberService `json:"services"`
	Status   Status          `json:"status"`
}

// PTRosterEntry is one row of the personal-training roster.
type PTRosterEntry struct {
	ServiceID       int        `db:"id" json:"service_id"`
	MemberID        int        `db:"member_id" json:"member_id"`
	MemberName      string     `db:"member_name" json:"member_name"`
	MemberPhone     string     `db:"member_phone" json:"member_phone"`
	ServiceName     string     `db:"service_name" json:"service_name"`
	StartDate       *time.Time `db:"start_date" json:"start_date,omitempty"`
	EndDate         *time.Time `db:"end_date" json:"end_date,omitempty"`
	Amount          float64    `db:"amount" json:"amount"`
	IsActive        bool       `db:"is_active" json:"is_active"`
	DaysUntilExpiry int        `json:"days_until_expiry"`
	Status          Status     `json:"status"`
}

// MemberStatus derives the lifecycle state of a membership. An elapsed expiry
// wins over everything; within the last week the member is expiring-soon; the
// active flag decides the rest.
func MemberStatus(m *Member, today time.Time) Status {
	days := DaysUntil(m.EndDate, today)
	if days < 0 {
		return StatusExpired
	}
	if m.IsActive && days <= expiringSoonWindowDays {
		return StatusExpiringSoon
	}
	if m.IsActive {
		return StatusActive
	}
	return StatusInactive
}

// ServiceStatus derives the state of an add-on service. The active flag is
// checked first; a service without an end date cannot expire.
func ServiceStatus(s *MemberService, today time.Time) Status {
	if !s.IsActive {
		return StatusInactive
	}
	if s.EndDate == nil {
		return StatusActive
	}
	days := DaysUntil(*s.EndDate, today)
	if days < 0 {
		return StatusExpired
	}
	if days <= expiringSoonWindowDays {
		return StatusExpiringSoon
	}
	return StatusActive
}

func ValidPlanType(p PlanType) bool {
	switch p {
	case PlanMonthly, PlanQuarterly, PlanYearly:
		return true
	}
	return false
}

func ValidStatus(s Status) bool {
	switch s {
	case StatusActive, StatusExpiringSoon, StatusExpired, StatusInactive:
		return true
	}
	return false
}

// NewServiceRow is a service row that passed form filtering and is ready to be
// inserted.
type NewServiceRow struct {
	Name      string
	Type      string
	Amount    float64
	StartDate *time.Time
	EndDate   *time.Time
}

// PTInput mirrors the personal-training block of the member form.
type PTInput struct {
	Enabled   bool   `json:"enabled"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Amount    string `json:"amount"`
}

// ServiceRow mirrors one "other service" row of the member form. Amounts
// arrive as strings; rows that do not parse are dropped, not rejected.
type ServiceRow struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

// filterServices keeps exactly the rows the invoice will charge for: the PT
// block when enabled with a parseable amount, and every other row with a
// non-empty name and parseable amount. Everything else is silently dropped.
func filterServices(pt PTInput, others []ServiceRow) []NewServiceRow {
	var kept []NewServiceRow

	if pt.Enabled {
		if amount, err := strconv.ParseFloat(strings.TrimSpace(pt.Amount), 64); err == nil {
			kept = append(kept, NewServiceRow{
				Name:      PTServiceName,
				Type:      ServiceTypePT,
				Amount:    amount,
				StartDate: parseDatePtr(pt.StartDate),
				EndDate:   parseDatePtr(pt.EndDate),
			})
		}
	}

	for _, row := range others {
		name := strings.TrimSpace(row.Name)
		if name == "" {
			continue
		}
		amount, err := strconv.ParseFloat(strings.TrimSpace(row.Amount), 64)
		if err != nil {
			continue
		}
		kept = append(kept, NewServiceRow{
			Name:   name,
			Type:   ServiceTypeOther,
			Amount: amount,
		})
	}

	return kept
}

func servicesTotal(services []NewServiceRow) float64 {
	var total float64
	for _, s := range services {
		total += s.Amount
	}
	return total
}

func parseDatePtr(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
