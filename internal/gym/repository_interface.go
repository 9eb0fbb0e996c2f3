package gym

import "context"

type Repository interface {
	GetByID(ctx context.Context, id int) (*Gym, error)
	UpdateSettings(ctx context.Context, id int, req UpdateSettingsRequest) (*Gym, error)
	SetLogoURL(ctx context.Context, id int, url string) (*Gym, error)
}
