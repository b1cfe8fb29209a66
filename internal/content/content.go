package content

import (
	"time"

	"github.com/google/uuid"
)

type Book struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Author      string    `json:"author" db:"author"`
	Description string    `json:"description" db:"description"`
	Category    string    `json:"category" db:"category"`
	CoverURL    string    `json:"cover_url" db:"cover_url"`
	Link        string    `json:"link" db:"link"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type Consultant struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Specialty string    `json:"specialty" db:"specialty"`
	Bio       string    `json:"bio" db:"bio"`
	ImageURL  string    `json:"image_url" db:"image_url"`
	Contact   string    `json:"contact" db:"contact"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type FAQ struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Question     string    `json:"question" db:"question"`
	Answer       string    `json:"answer" db:"answer"`
	DisplayOrder int       `json:"display_order" db:"display_order"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Admin write requests form a closed set of shapes, one per operation,
// validated in the handler before any service call.

type CreateBookRequest struct {
	Title       string `json:"title" validate:"required"`
	Author      string `json:"author" validate:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	CoverURL    string `json:"cover_url"`
	Link        string `json:"link"`
}

type UpdateBookRequest struct {
	Title       *string `json:"title,omitempty"`
	Author      *string `json:"author,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	CoverURL    *string `json:"cover_url,omitempty"`
	Link        *string `json:"link,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type CreateConsultantRequest struct {
	Name      string `json:"name" validate:"required"`
	Specialty string `json:"specialty" validate:"required"`
	Bio       string `json:"bio"`
	ImageURL  string `json:"image_url"`
	Contact   string `json:"contact"`
}

type UpdateConsultantRequest struct {
	Name      *string `json:"name,omitempty"`
	Specialty *string `json:"specialty,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	ImageURL  *string `json:"image_url,omitempty"`
	Contact   *string `json:"contact,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

type CreateFAQRequest struct {
	Question     string `json:"question" validate:"required"`
	Answer       string `json:"answer" validate:"required"`
	DisplayOrder int    `json:"display_order"`
}

type UpdateFAQRequest struct {
	Question     *string `json:"question,omitempty"`
	Answer       *string `json:"answer,omitempty"`
	DisplayOrder *int    `json:"display_order,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}
