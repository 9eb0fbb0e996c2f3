package gym

import (
	"context"
	"database/sql"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockGymRepo struct{ mock.Mock }

func (m *MockGymRepo) GetByID(ctx context.Context, id int) (*Gym, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Gym), args.Error(1)
}

func (m *MockGymRepo) UpdateSettings(ctx context.Context, id int, req UpdateSettingsRequest) (*Gym, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Gym), args.Error(1)
}

func (m *MockGymRepo) SetLogoURL(ctx context.Context, id int, url string) (*Gym, error) {
	args := m.Called(ctx, id, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Gym), args.Error(1)
}

type MockLogoStore struct{ mock.Mock }

func (m *MockLogoStore) Upload(ctx context.Context, gymID int, filename, contentType string, r io.Reader, size int64) (string, error) {
	args := m.Called(ctx, gymID, filename, contentType, r, size)
	return args.String(0), args.Error(1)
}

func TestGetGym(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		repo := new(MockGymRepo)
		svc := NewService(repo, new(MockLogoStore))

		repo.On("GetByID", ctx, 1).Return(&Gym{ID: 1, Name: "Iron Temple"}, nil)

		g, err := svc.Get(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Iron Temple", g.Name)
	})

	t.Run("Not found", func(t *testing.T) {
		repo := new(MockGymRepo)
		svc := NewService(repo, new(MockLogoStore))

		repo.On("GetByID", ctx, 2).Return(nil, sql.ErrNoRows)

		_, err := svc.Get(ctx, 2)
		assert.ErrorIs(t, err, ErrGymNotFound)
	})
}

func TestUploadLogo(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores the file and saves its URL", func(t *testing.T) {
		repo := new(MockGymRepo)
		store := new(MockLogoStore)
		svc := NewService(repo, store)

		body := strings.NewReader("png-bytes")
		store.On("Upload", ctx, 1, "logo.png", "image/png", body, int64(9)).
			Return("https://cdn.test/gym-logos/1/logo.png", nil)
		logoURL := "https://cdn.test/gym-logos/1/logo.png"
		repo.On("SetLogoURL", ctx, 1, logoURL).Return(&Gym{ID: 1, LogoURL: &logoURL}, nil)

		g, err := svc.UploadLogo(ctx, 1, "logo.png", "image/png", body, 9)
		require.NoError(t, err)
		require.NotNil(t, g.LogoURL)
		assert.Equal(t, logoURL, *g.LogoURL)
	})

	t.Run("Rejects unsupported content types before uploading", func(t *testing.T) {
		repo := new(MockGymRepo)
		store := new(MockLogoStore)
		svc := NewService(repo, store)

		_, err := svc.UploadLogo(ctx, 1, "logo.svg", "image/svg+xml", strings.NewReader(""), 0)
		assert.ErrorIs(t, err, ErrUnsupportedLogo)
		store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
