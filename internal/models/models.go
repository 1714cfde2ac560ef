package models

import (
	"time"

	"github.com/gofrs/uuid"
)

// ===============================
// USER & PROFILE MODELS
// ===============================

// Profile is the parent account profile. Auth itself lives upstream;
// this row only carries app-side profile state keyed by the user id.
type Profile struct {
	UserID uuid.UUID `json:"user_id" db:"user_id" validate:"required"`

	// Profile fields
	DisplayName *string `json:"display_name,omitempty" db:"display_name" validate:"omitempty,min=2,max=100"`
	AvatarURL   *string `json:"avatar_url,omitempty" db:"avatar_url" validate:"omitempty,url"`
	Locale      string  `json:"locale" db:"locale" validate:"omitempty,bcp47_language_tag"`

	// Push delivery
	PushTokens []string `json:"-" db:"push_tokens"`

	// Status
	OnboardingDone bool `json:"onboarding_done" db:"onboarding_done"`

	// Timestamps
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ChildProfile is one child under a parent account.
type ChildProfile struct {
	ID     int64     `json:"id" db:"id"`
	UserID uuid.UUID `json:"user_id" db:"user_id" validate:"required"`

	Name       string `json:"name" db:"name" validate:"required,min=1,max=100"`
	BirthYear  int    `json:"birth_year" db:"birth_year" validate:"omitempty,min=2005,max=2030"`
	AvatarIcon string `json:"avatar_icon" db:"avatar_icon"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ===============================
// PAGINATION & QUERY HELPERS
// ===============================

// PaginationParams represents pagination parameters
type PaginationParams struct {
	Limit  int    `json:"limit" validate:"min=1,max=100"`
	Offset int    `json:"offset" validate:"min=0"`
	Sort   string `json:"sort,omitempty" validate:"omitempty,oneof=created_at updated_at sort_order"`
	Order  string `json:"order,omitempty" validate:"omitempty,oneof=asc desc"`
}

// Normalize fills in defaults and clamps limits. Callers that key
// caches by pagination must normalize first so equivalent requests
// share an entry.
func (p PaginationParams) Normalize() PaginationParams {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// PaginatedResponse represents a paginated API response
type PaginatedResponse[T any] struct {
	Data       []T            `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}

// PaginationMeta contains pagination metadata
type PaginationMeta struct {
	CurrentPage  int   `json:"current_page"`
	TotalPages   int   `json:"total_pages"`
	TotalItems   int64 `json:"total_items"`
	ItemsPerPage int   `json:"items_per_page"`
	HasNext      bool  `json:"has_next"`
	HasPrev      bool  `json:"has_prev"`
}
