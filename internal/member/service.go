package member

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"gymdesk/internal/invoice"
	"gymdesk/internal/metrics"
)

var (
	ErrMemberNotFound   = errors.New("member not found")
	ErrServiceNotFound  = errors.New("service not found")
	ErrInvalidPlanType  = errors.New("invalid plan type")
	ErrInvalidDate      = errors.New("invalid date")
	ErrNotDueForRenewal = errors.New("membership is not due for renewal")
	ErrDuplicatePT      = errors.New("member already has an active personal training service")
	ErrNotPTService     = errors.New("service is not a personal training service")
)

// DuplicateServiceError reports which submitted service names already exist as
// active services on the member. Nothing is written when it is returned.
type DuplicateServiceError struct {
	Names []string
}

func (e *DuplicateServiceError) Error() string {
	return fmt.Sprintf("services already exist for this member: %s", strings.Join(e.Names, ", "))
}

type CreateMemberRequest struct {
	Name          string       `json:"name" binding:"required"`
	Phone         string       `json:"phone" binding:"required"`
	DOB           string       `json:"dob"`
	PlanType      PlanType     `json:"plan_type" binding:"required"`
	StartDate     string       `json:"start_date" binding:"required"`
	Amount        float64      `json:"amount" binding:"required,gt=0"`
	PT            PTInput      `json:"pt"`
	OtherServices []ServiceRow `json:"other_services"`
}

type UpdateMemberRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	DOB   string `json:"dob"`
}

type RenewRequest struct {
	PlanType      PlanType     `json:"plan_type" binding:"required"`
	Amount        float64      `json:"amount" binding:"required,gt=0"`
	PT            PTInput      `json:"pt"`
	OtherServices []ServiceRow `json:"other_services"`
}

type AddServicesRequest struct {
	PT            PTInput      `json:"pt"`
	OtherServices []ServiceRow `json:"other_services"`
}

type RenewServiceRequest struct {
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
}

type Service interface {
	Create(ctx context.Context, gymID int, req CreateMemberRequest) (*MemberWithServices, *invoice.Invoice, error)
	List(ctx context.Context, gymID int, search string, status Status) ([]MemberWithServices, error)
	Get(ctx context.Context, gymID, id int) (*MemberWithServices, error)
	UpdateProfile(ctx context.Context, gymID, id int, req UpdateMemberRequest) (*Member, error)
	Renew(ctx context.Context, gymID, id int, req RenewRequest) (*Member, *invoice.Invoice, error)
	AddServices(ctx context.Context, gymID, id int, req AddServicesRequest) ([]MemberService, *invoice.Invoice, error)
	RenewPTService(ctx context.Context, gymID, memberID, serviceID int, req RenewServiceRequest) (*MemberService, *invoice.Invoice, error)
	Delete(ctx context.Context, gymID, id int) error
	PTRoster(ctx context.Context, gymID int) ([]PTRosterEntry, error)

	invoice.MemberDirectory
	CSVExporter
}

type service struct {
	repo     Repository
	numberer invoice.Numberer
}

func NewService(repo Repository, numberer invoice.Numberer) Service {
	return &service{repo: repo, numberer: numberer}
}

func (s *service) Create(ctx context.Context, gymID int, req CreateMemberRequest) (*MemberWithServices, *invoice.Invoice, error) {
	if !ValidPlanType(req.PlanType) {
		return nil, nil, ErrInvalidPlanType
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, nil, ErrInvalidDate
	}

	var dob *time.Time
	if req.DOB != "" {
		parsed, err := time.Parse("2006-01-02", req.DOB)
		if err != nil {
			return nil, nil, ErrInvalidDate
		}
		dob = &parsed
	}

	services := filterServices(req.PT, req.OtherServices)
	total := req.Amount + servicesTotal(services)

	draft := invoice.Draft{
		Number: s.numberer.IssueNumber(ctx, gymID),
		Amount: total,
		Date:   start,
		Status: invoice.StatusPaid,
		Type:   invoice.TypeMembership,
	}

	m := &Member{
		GymID:     gymID,
		Name:      req.Name,
		Phone:     req.Phone,
		DOB:       dob,
		PlanType:  req.PlanType,
		StartDate: start,
		EndDate:   EndDate(start, req.PlanType),
		Amount:    req.Amount,
	}

	created, inv, err := s.repo.CreateWithInvoice(ctx, m, services, draft)
	if err != nil {
		return nil, nil, err
	}

	metrics.RecordMemberCreated()
	metrics.RecordInvoice(invoice.TypeMembership)

	inserted, err := s.repo.ListActiveServices(ctx, created.ID)
	if err != nil {
		return nil, nil, err
	}

	return &MemberWithServices{
		Member:   *created,
		Services: inserted,
		Status:   MemberStatus(created, time.Now()),
	}, inv, nil
}

func (s *service) List(ctx context.Context, gymID int, search string, status Status) ([]MemberWithServices, error) {
	members, err := s.repo.ListByGym(ctx, gymID)
	if err != nil {
		return nil, err
	}

	today := time.Now()
	search = strings.ToLower(strings.TrimSpace(search))

	result := make([]MemberWithServices, 0, len(members))
	for _, m := range members {
		m.Status = MemberStatus(&m.Member, today)

		if search != "" &&
			!strings.Contains(strings.ToLower(m.Name), search) &&
			!strings.Contains(m.Phone, search) {
			continue
		}
		if status != "" && m.Status != status {
			continue
		}

		result = append(result, m)
	}

	return result, nil
}

func (s *service) Get(ctx context.Context, gymID, id int) (*MemberWithServices, error) {
	m, err := s.repo.GetByID(ctx, gymID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	services, err := s.repo.ListServices(ctx, id)
	if err != nil {
		return nil, err
	}

	return &MemberWithServices{
		Member:   *m,
		Services: services,
		Status:   MemberStatus(m, time.Now()),
	}, nil
}

func (s *service) UpdateProfile(ctx context.Context, gymID, id int, req UpdateMemberRequest) (*Member, error) {
	var dob *time.Time
	if req.DOB != "" {
		parsed, err := time.Parse("2006-01-02", req.DOB)
		if err != nil {
			return nil, ErrInvalidDate
		}
		dob = &parsed
	}

	m, err := s.repo.UpdateProfile(ctx, gymID, id, req.Name, req.Phone, dob)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	return m, nil
}

func (s *service) Renew(ctx context.Context, gymID, id int, req RenewRequest) (*Member, *invoice.Invoice, error) {
	if !ValidPlanType(req.PlanType) {
		return nil, nil, ErrInvalidPlanType
	}

	m, err := s.repo.GetByID(ctx, gymID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrMemberNotFound
		}
		return nil, nil, err
	}

	switch MemberStatus(m, time.Now()) {
	case StatusExpiringSoon, StatusExpired:
	default:
		return nil, nil, ErrNotDueForRenewal
	}

	newStart := RenewalStartDate(m.EndDate)
	upd := RenewUpdate{
		PlanType:  req.PlanType,
		StartDate: newStart,
		EndDate:   EndDate(newStart, req.PlanType),
		Amount:    req.Amount,
	}

	services := filterServices(req.PT, req.OtherServices)
	total := req.Amount + servicesTotal(services)

	draft := invoice.Draft{
		Number: s.numberer.IssueNumber(ctx, gymID),
		Amount: total,
		Date:   newStart,
		Status: invoice.StatusPaid,
		Type:   invoice.TypeRenewal,
	}

	renewed, inv, err := s.repo.RenewWithInvoice(ctx, gymID, id, upd, services, draft)
	if err != nil {
		return nil, nil, err
	}

	metrics.RecordRenewal()
	metrics.RecordInvoice(invoice.TypeRenewal)

	return renewed, inv, nil
}

func (s *service) AddServices(ctx context.Context, gymID, id int, req AddServicesRequest) ([]MemberService, *invoice.Invoice, error) {
	if _, err := s.repo.GetByID(ctx, gymID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrMemberNotFound
		}
		return nil, nil, err
	}

	existing, err := s.repo.ListActiveServices(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	existingNames := make(map[string]bool, len(existing))
	hasPT := false
	for _, svc := range existing {
		existingNames[strings.ToLower(svc.ServiceName)] = true
		if svc.ServiceType == ServiceTypePT {
			hasPT = true
		}
	}

	if req.PT.Enabled && hasPT {
		return nil, nil, ErrDuplicatePT
	}

	var duplicates []string
	for _, row := range req.OtherServices {
		name := strings.TrimSpace(row.Name)
		if name != "" && existingNames[strings.ToLower(name)] {
			duplicates = append(duplicates, name)
		}
	}
	if len(duplicates) > 0 {
		return nil, nil, &DuplicateServiceError{Names: duplicates}
	}

	services := filterServices(req.PT, req.OtherServices)
	if len(services) == 0 {
		return []MemberService{}, nil, nil
	}

	var draft *invoice.Draft
	if total := servicesTotal(services); total > 0 {
		draft = &invoice.Draft{
			Number: s.numberer.IssueNumber(ctx, gymID),
			Amount: total,
			Date:   time.Now(),
			Status: invoice.StatusPaid,
			Type:   invoice.TypeService,
		}
	}

	inserted, inv, err := s.repo.AddServicesWithInvoice(ctx, gymID, id, services, draft)
	if err != nil {
		return nil, nil, err
	}

	if inv != nil {
		metrics.RecordInvoice(invoice.TypeService)
	}

	return inserted, inv, nil
}

func (s *service) RenewPTService(ctx context.Context, gymID, memberID, serviceID int, req RenewServiceRequest) (*MemberService, *invoice.Invoice, error) {
	if _, err := s.repo.GetByID(ctx, gymID, memberID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrMemberNotFound
		}
		return nil, nil, err
	}

	svc, err := s.repo.GetServiceByID(ctx, memberID, serviceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrServiceNotFound
		}
		return nil, nil, err
	}

	if svc.ServiceType != ServiceTypePT {
		return nil, nil, ErrNotPTService
	}

	upd := ServiceRenewal{
		StartDate: parseDatePtr(req.StartDate),
		EndDate:   parseDatePtr(req.EndDate),
		Amount:    req.Amount,
	}

	draft := invoice.Draft{
		Number: s.numberer.IssueNumber(ctx, gymID),
		Amount: req.Amount,
		Date:   time.Now(),
		Status: invoice.StatusPaid,
		Type:   invoice.TypeService,
	}

	renewed, inv, err := s.repo.RenewServiceWithInvoice(ctx, gymID, memberID, serviceID, upd, draft)
	if err != nil {
		return nil, nil, err
	}

	metrics.RecordInvoice(invoice.TypeService)

	return renewed, inv, nil
}

func (s *service) Delete(ctx context.Context, gymID, id int) error {
	if err := s.repo.Delete(ctx, gymID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMemberNotFound
		}
		return err
	}
	return nil
}

var rosterStatusPriority = map[Status]int{
	StatusExpiringSoon: 0,
	StatusExpired:      1,
	StatusActive:       2,
	StatusInactive:     3,
}

func (s *service) PTRoster(ctx context.Context, gymID int) ([]PTRosterEntry, error) {
	entries, err := s.repo.ListPT(ctx, gymID)
	if err != nil {
		return nil, err
	}

	today := time.Now()
	for i := range entries {
		svc := MemberService{
			IsActive: entries[i].IsActive,
			EndDate:  entries[i].EndDate,
		}
		entries[i].Status = ServiceStatus(&svc, today)
		if entries[i].EndDate != nil {
			entries[i].DaysUntilExpiry = DaysUntil(*entries[i].EndDate, today)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		pi, pj := rosterStatusPriority[entries[i].Status], rosterStatusPriority[entries[j].Status]
		if pi != pj {
			return pi < pj
		}
		return entries[i].DaysUntilExpiry < entries[j].DaysUntilExpiry
	})

	return entries, nil
}

// InvoiceContext resolves the member line items an invoice document needs.
func (s *service) InvoiceContext(ctx context.Context, gymID, memberID int) (*invoice.MemberInfo, []invoice.LineItem, error) {
	m, err := s.repo.GetByID(ctx, gymID, memberID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrMemberNotFound
		}
		return nil, nil, err
	}

	services, err := s.repo.ListActiveServices(ctx, memberID)
	if err != nil {
		return nil, nil, err
	}

	items := make([]invoice.LineItem, 0, len(services))
	for _, svc := range services {
		items = append(items, invoice.LineItem{Name: svc.ServiceName, Amount: svc.Amount})
	}

	return &invoice.MemberInfo{
		Name:       m.Name,
		Phone:      m.Phone,
		PlanType:   string(m.PlanType),
		PlanAmount: m.Amount,
	}, items, nil
}
