package email

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"gymdesk/internal/logger"
	"gymdesk/internal/metrics"
)

const (
	queueKey       = "emails"
	failedQueueKey = "emails:failed"
	maxTries       = 3
)

var ErrRelayKeyMissing = errors.New("email relay API key is not configured")

type Job struct {
	To         string    `json:"to"`
	Subject    string    `json:"subject"`
	HTML       string    `json:"html"`
	Attachment string    `json:"attachment,omitempty"`
	Filename   string    `json:"filename,omitempty"`
	Type       string    `json:"type"`
	Tries      int       `json:"tries"`
	Created    time.Time `json:"created"`
}

type Service struct {
	redis    *redis.Client
	client   *http.Client
	relayURL string
	apiKey   string
	from     string
	fromName string
}

func New(relayURL, apiKey, fromEmail, fromName, redisAddr string) *Service {
	return NewWithClient(relayURL, apiKey, fromEmail, fromName,
		redis.NewClient(&redis.Options{Addr: redisAddr}))
}

// NewWithClient lets tests inject a redis client.
func NewWithClient(relayURL, apiKey, fromEmail, fromName string, rdb *redis.Client) *Service {
	return &Service{
		redis:    rdb,
		client:   &http.Client{Timeout: 15 * time.Second},
		relayURL: relayURL,
		apiKey:   apiKey,
		from:     fromEmail,
		fromName: fromName,
	}
}

// SendInvoice queues an invoice email with the PDF attached as base64.
func (s *Service) SendInvoice(ctx context.Context, to, subject, html, pdfBase64, filename string) error {
	return s.enqueue(ctx, Job{
		To:         to,
		Subject:    subject,
		HTML:       html,
		Attachment: pdfBase64,
		Filename:   filename,
		Type:       "invoice",
		Created:    time.Now(),
	})
}

func (s *Service) Send(ctx context.Context, to, subject, html string) error {
	return s.enqueue(ctx, Job{
		To:      to,
		Subject: subject,
		HTML:    html,
		Type:    "notification",
		Created: time.Now(),
	})
}

func (s *Service) enqueue(ctx context.Context, job Job) error {
	if s.apiKey == "" {
		return ErrRelayKeyMissing
	}

	data, err := json.Marshal(job)
	if err != nil {
		logger.Errorf("Failed to marshal email job: %v", err)
		return err
	}

	if err := s.redis.LPush(ctx, queueKey, data).Err(); err != nil {
		logger.Errorf("Failed to queue email to %s: %v", job.To, err)
		return err
	}

	logger.Infof("Email queued: %s to %s", job.Subject, job.To)
	return nil
}

func (s *Service) Start(ctx context.Context) {
	logger.Info("Email worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Email worker stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		return
	}

	var job Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Errorf("Bad email data: %v", err)
		return
	}

	job.Tries++
	logger.Infof("Sending email to %s (attempt %d)", job.To, job.Tries)
	if err := s.deliver(ctx, job); err != nil {
		logger.Errorf("Failed to send email to %s: %v", job.To, err)
		metrics.RecordEmail(job.Type, "failed")

		if job.Tries < maxTries {
			time.Sleep(5 * time.Second)
			data, _ := json.Marshal(job)
			s.redis.LPush(context.Background(), queueKey, data)
			logger.Infof("Retrying email to %s (attempt %d)", job.To, job.Tries+1)
		} else {
			logger.Errorf("Email to %s failed after %d attempts", job.To, maxTries)
			s.saveFailed(job, err)
		}
		return
	}

	metrics.RecordEmail(job.Type, "sent")
	logger.Infof("Email sent successfully to %s", job.To)
}

type relayPayload struct {
	From        string            `json:"from"`
	To          []string          `json:"to"`
	Subject     string            `json:"subject"`
	HTML        string            `json:"html"`
	Attachments []relayAttachment `json:"attachments,omitempty"`
}

type relayAttachment struct {
	Content  string `json:"content"`
	Filename string `json:"filename"`
}

func (s *Service) deliver(ctx context.Context, job Job) error {
	payload := relayPayload{
		From:    fmt.Sprintf("%s <%s>", s.fromName, s.from),
		To:      []string{job.To},
		Subject: job.Subject,
		HTML:    job.HTML,
	}
	if job.Attachment != "" {
		payload.Attachments = []relayAttachment{{Content: job.Attachment, Filename: job.Filename}}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.relayURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("relay returned status %d: %s", resp.StatusCode, detail)
	}

	return nil
}

func (s *Service) saveFailed(job Job, err error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": err.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	s.redis.LPush(context.Background(), failedQueueKey, data)
	logger.Errorf("Email moved to failed queue: %s", job.To)
}

func (s *Service) QueueLength(ctx context.Context) int64 {
	length, _ := s.redis.LLen(ctx, queueKey).Result()
	return length
}

func (s *Service) Close() error {
	return s.redis.Close()
}
