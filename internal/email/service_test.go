package email

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymdesk/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Init()

	code := m.Run()
	os.Exit(code)
}

func newTestService(rdb *redis.Client) *Service {
	return NewWithClient("https://relay.test/emails", "test-key", "noreply@gymdesk.app", "GymDesk", rdb)
}

func TestSendInvoice(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.Regexp().ExpectLPush(queueKey, `.*`).SetVal(1)

	svc := newTestService(db)

	pdf := base64.StdEncoding.EncodeToString([]byte("%PDF-1.3 test"))
	err := svc.SendInvoice(ctx, "ravi@example.com", "Invoice INV-1-000001", "<p>hi</p>", pdf, "INV-1-000001.pdf")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSendWithoutAPIKey(t *testing.T) {
	db, _ := redismock.NewClientMock()
	ctx := context.Background()

	svc := NewWithClient("https://relay.test/emails", "", "noreply@gymdesk.app", "GymDesk", db)

	err := svc.Send(ctx, "user@example.com", "Hello", "<p>hi</p>")
	assert.ErrorIs(t, err, ErrRelayKeyMissing)
}

func TestDeliverPostsRelayPayload(t *testing.T) {
	var got relayPayload
	var authHeader string

	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer relay.Close()

	db, _ := redismock.NewClientMock()
	svc := NewWithClient(relay.URL, "test-key", "noreply@gymdesk.app", "GymDesk", db)

	job := Job{
		To:         "ravi@example.com",
		Subject:    "Invoice",
		HTML:       "<p>hi</p>",
		Attachment: "cGRm",
		Filename:   "invoice.pdf",
	}
	require.NoError(t, svc.deliver(context.Background(), job))

	assert.Equal(t, "Bearer test-key", authHeader)
	assert.Equal(t, "GymDesk <noreply@gymdesk.app>", got.From)
	assert.Equal(t, []string{"ravi@example.com"}, got.To)
	require.Len(t, got.Attachments, 1)
	assert.Equal(t, "invoice.pdf", got.Attachments[0].Filename)
}

func TestDeliverFailsOnRelayError(t *testing.T) {
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	}))
	defer relay.Close()

	db, _ := redismock.NewClientMock()
	svc := NewWithClient(relay.URL, "bad-key", "noreply@gymdesk.app", "GymDesk", db)

	err := svc.deliver(context.Background(), Job{To: "x@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestQueueLength(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectLLen(queueKey).SetVal(3)

	svc := newTestService(db)
	assert.Equal(t, int64(3), svc.QueueLength(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
