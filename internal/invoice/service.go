package invoice

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"gymdesk/internal/gym"
	"gymdesk/internal/logger"
	"gymdesk/internal/metrics"
	"gymdesk/internal/pdf"
)

var ErrInvoiceNotFound = errors.New("invoice not found")

// MemberInfo and LineItem are the member-side inputs of an invoice document.
type MemberInfo struct {
	Name       string
	Phone      string
	PlanType   string
	PlanAmount float64
}

type LineItem struct {
	Name   string
	Amount float64
}

// MemberDirectory resolves the member context an invoice document is built
// from. Implemented by the member service.
type MemberDirectory interface {
	InvoiceContext(ctx context.Context, gymID, memberID int) (*MemberInfo, []LineItem, error)
}

// GymSource resolves tenant branding. Implemented by the gym repository.
type GymSource interface {
	GetByID(ctx context.Context, id int) (*gym.Gym, error)
}

// Mailer queues invoice emails. Implemented by the email service.
type Mailer interface {
	SendInvoice(ctx context.Context, to, subject, html, pdfBase64, filename string) error
}

type SendEmailRequest struct {
	To string `json:"to" binding:"required,email"`
}

type Service interface {
	ListGrouped(ctx context.Context, gymID int, memberID int) ([]MemberGroup, error)
	RenderPDF(ctx context.Context, gymID, id int) (filename string, content []byte, err error)
	SendEmail(ctx context.Context, gymID, id int, req SendEmailRequest) error
	WhatsAppLink(ctx context.Context, gymID, id int) (string, error)
}

type service struct {
	repo    Repository
	gyms    GymSource
	members MemberDirectory
	mailer  Mailer
	client  *http.Client
}

func NewService(repo Repository, gyms GymSource, members MemberDirectory, mailer Mailer) Service {
	return &service{
		repo:    repo,
		gyms:    gyms,
		members: members,
		mailer:  mailer,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// ListGrouped returns the tenant's invoices grouped per member with totals per
// payment status, sorted by member name. memberID zero means all members.
func (s *service) ListGrouped(ctx context.Context, gymID int, memberID int) ([]MemberGroup, error) {
	var (
		invoices []InvoiceWithMember
		err      error
	)
	if memberID > 0 {
		invoices, err = s.repo.ListByMember(ctx, gymID, memberID)
	} else {
		invoices, err = s.repo.ListByGym(ctx, gymID)
	}
	if err != nil {
		return nil, err
	}

	groups := make(map[int]*MemberGroup)
	order := []int{}
	for _, inv := range invoices {
		key := 0
		if inv.MemberID != nil {
			key = *inv.MemberID
		}

		group, ok := groups[key]
		if !ok {
			group = &MemberGroup{
				MemberID:    key,
				MemberName:  inv.MemberName,
				MemberPhone: inv.MemberPhone,
			}
			groups[key] = group
			order = append(order, key)
		}

		group.Invoices = append(group.Invoices, inv)
		group.TotalAmount += inv.Amount
		switch inv.PaymentStatus {
		case StatusPaid:
			group.PaidAmount += inv.Amount
		case StatusPending:
			group.PendingAmount += inv.Amount
		case StatusOverdue:
			group.OverdueAmount += inv.Amount
		}
	}

	result := make([]MemberGroup, 0, len(order))
	for _, key := range order {
		result = append(result, *groups[key])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].MemberName < result[j].MemberName
	})

	return result, nil
}

func (s *service) RenderPDF(ctx context.Context, gymID, id int) (string, []byte, error) {
	data, err := s.buildPDFData(ctx, gymID, id)
	if err != nil {
		return "", nil, err
	}

	content, err := pdf.RenderInvoice(*data)
	if err != nil {
		return "", nil, err
	}

	metrics.RecordPDF()

	return data.InvoiceNumber + ".pdf", content, nil
}

func (s *service) SendEmail(ctx context.Context, gymID, id int, req SendEmailRequest) error {
	inv, err := s.get(ctx, gymID, id)
	if err != nil {
		return err
	}

	g, err := s.gyms.GetByID(ctx, gymID)
	if err != nil {
		return err
	}

	filename, content, err := s.RenderPDF(ctx, gymID, id)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Invoice %s from %s", inv.InvoiceNumber, g.Name)
	html := fmt.Sprintf(`<h2>Invoice from %s</h2>
<p>Dear %s,</p>
<p>Please find attached your invoice for Rs. %.2f.</p>
<p>Invoice Number: %s</p>
<p>Date: %s</p>
<p>Thank you for your business!</p>`,
		g.Name, inv.MemberName, inv.Amount, inv.InvoiceNumber, inv.Date.Format("Jan 2, 2006"))

	encoded := base64.StdEncoding.EncodeToString(content)
	return s.mailer.SendInvoice(ctx, req.To, subject, html, encoded, filename)
}

func (s *service) WhatsAppLink(ctx context.Context, gymID, id int) (string, error) {
	inv, err := s.get(ctx, gymID, id)
	if err != nil {
		return "", err
	}

	g, err := s.gyms.GetByID(ctx, gymID)
	if err != nil {
		return "", err
	}

	// Deep link only: WhatsApp gets a prefilled text summary, never the PDF.
	message := fmt.Sprintf("Hi %s! Your invoice %s from %s for Rs. %.2f dated %s is ready. Thank you!",
		inv.MemberName, inv.InvoiceNumber, g.Name, inv.Amount, inv.Date.Format("Jan 2, 2006"))

	return BuildWhatsAppLink(inv.MemberPhone, message)
}

func (s *service) get(ctx context.Context, gymID, id int) (*InvoiceWithMember, error) {
	inv, err := s.repo.GetByID(ctx, gymID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvoiceNotFound
		}
		return nil, err
	}
	return inv, nil
}

func (s *service) buildPDFData(ctx context.Context, gymID, id int) (*pdf.InvoiceData, error) {
	inv, err := s.get(ctx, gymID, id)
	if err != nil {
		return nil, err
	}

	g, err := s.gyms.GetByID(ctx, gymID)
	if err != nil {
		return nil, err
	}

	data := &pdf.InvoiceData{
		InvoiceNumber: inv.InvoiceNumber,
		Date:          inv.Date,
		MemberName:    inv.MemberName,
		MemberPhone:   inv.MemberPhone,
		Amount:        inv.Amount,
		GymName:       g.Name,
		GymEmail:      g.Email,
		PrimaryColor:  g.PrimaryColor,
	}
	if g.Phone != nil {
		data.GymPhone = *g.Phone
	}
	if g.Address != nil {
		data.GymAddress = *g.Address
	}
	if g.GSTNumber != nil {
		data.GymGSTNumber = *g.GSTNumber
	}

	if inv.MemberID != nil {
		info, items, err := s.members.InvoiceContext(ctx, gymID, *inv.MemberID)
		if err == nil {
			data.PlanType = info.PlanType
			data.PlanAmount = info.PlanAmount
			for _, item := range items {
				data.Services = append(data.Services, pdf.LineItem{Name: item.Name, Amount: item.Amount})
			}
		}
	}

	if g.LogoURL != nil {
		if logo, err := s.fetchLogo(ctx, *g.LogoURL); err != nil {
			logger.Errorf("failed to fetch gym logo for invoice %s: %v", inv.InvoiceNumber, err)
		} else {
			data.LogoPNG = logo
		}
	}

	return data, nil
}

func (s *service) fetchLogo(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("logo fetch returned status %d", resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, 5<<20))
}
