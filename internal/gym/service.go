package gym

import (
	"context"
	"database/sql"
	"errors"
	"io"
)

var (
	ErrGymNotFound     = errors.New("gym not found")
	ErrUnsupportedLogo = errors.New("unsupported logo format")
)

// LogoStore stores a tenant logo and returns the public URL it can be fetched
// from afterwards.
type LogoStore interface {
	Upload(ctx context.Context, gymID int, filename, contentType string, r io.Reader, size int64) (string, error)
}

type Service interface {
	Get(ctx context.Context, id int) (*Gym, error)
	UpdateSettings(ctx context.Context, id int, req UpdateSettingsRequest) (*Gym, error)
	UploadLogo(ctx context.Context, id int, filename, contentType string, r io.Reader, size int64) (*Gym, error)
}

type service struct {
	repo  Repository
	logos LogoStore
}

func NewService(repo Repository, logos LogoStore) Service {
	return &service{repo: repo, logos: logos}
}

func (s *service) Get(ctx context.Context, id int) (*Gym, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGymNotFound
		}
		return nil, err
	}
	return g, nil
}

func (s *service) UpdateSettings(ctx context.Context, id int, req UpdateSettingsRequest) (*Gym, error) {
	g, err := s.repo.UpdateSettings(ctx, id, req)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGymNotFound
		}
		return nil, err
	}
	return g, nil
}

var allowedLogoTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
}

func (s *service) UploadLogo(ctx context.Context, id int, filename, contentType string, r io.Reader, size int64) (*Gym, error) {
	if !allowedLogoTypes[contentType] {
		return nil, ErrUnsupportedLogo
	}

	url, err := s.logos.Upload(ctx, id, filename, contentType, r, size)
	if err != nil {
		return nil, err
	}

	g, err := s.repo.SetLogoURL(ctx, id, url)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGymNotFound
		}
		return nil, err
	}

	return g, nil
}
