package gym

import "time"

// Gym is the tenant: the unit of data isolation and the branding source for
// invoices and documents.
type Gym struct {
	ID             int       `db:"id" json:"id"`
	UserID         int       `db:"user_id" json:"-"`
	Name           string    `db:"name" json:"name"`
	Email          string    `db:"email" json:"email"`
	Phone          *string   `db:"phone" json:"phone,omitempty"`
	Address        *string   `db:"address" json:"address,omitempty"`
	GSTNumber      *string   `db:"gst_number" json:"gst_number,omitempty"`
	LogoURL        *string   `db:"logo_url" json:"logo_url,omitempty"`
	PrimaryColor   string    `db:"primary_color" json:"primary_color"`
	SecondaryColor string    `db:"secondary_color" json:"secondary_color"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

type UpdateSettingsRequest struct {
	Name           string `json:"name" binding:"required"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	GSTNumber      string `json:"gst_number"`
	PrimaryColor   string `json:"primary_color" binding:"required,hexcolor"`
	SecondaryColor string `json:"secondary_color" binding:"required,hexcolor"`
}
