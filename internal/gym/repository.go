package gym

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const gymColumns = `id, user_id, name, email, phone, address, gst_number, logo_url, primary_color, secondary_color, created_at`

func (r *repository) GetByID(ctx context.Context, id int) (*Gym, error) {
	query := `SELECT ` + gymColumns + ` FROM gyms WHERE id = $1`

	var g Gym
	if err := r.db.GetContext(ctx, &g, query, id); err != nil {
		return nil, err
	}

	return &g, nil
}

func (r *repository) UpdateSettings(ctx context.Context, id int, req UpdateSettingsRequest) (*Gym, error) {
	query := `
		UPDATE gyms
		SET name = $1,
		    phone = NULLIF($2, ''),
		    address = NULLIF($3, ''),
		    gst_number = NULLIF($4, ''),
		    primary_color = $5,
		    secondary_color = $6
		WHERE id = $7
		RETURNING ` + gymColumns + `
	`

	var g Gym
	err := r.db.QueryRowxContext(ctx, query,
		req.Name, req.Phone, req.Address, req.GSTNumber, req.PrimaryColor, req.SecondaryColor, id,
	).StructScan(&g)
	if err != nil {
		return nil, err
	}

	return &g, nil
}

func (r *repository) SetLogoURL(ctx context.Context, id int, url string) (*Gym, error) {
	query := `UPDATE gyms SET logo_url = $1 WHERE id = $2 RETURNING ` + gymColumns

	var g Gym
	if err := r.db.QueryRowxContext(ctx, query, url, id).StructScan(&g); err != nil {
		return nil, err
	}

	return &g, nil
}
