package member

import "time"

type Status string

const (
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
	StatusDue     Status = "due"
)

// PlaceholderImageURL is assigned when a member is created without a photo
// or when the image host rejects the upload.
const PlaceholderImageURL = "https://static.gymdesk.app/avatars/placeholder.png"

type Member struct {
	ID         int       `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Email      string    `db:"email" json:"email"`
	Phone      string    `db:"phone" json:"phone"`
	Address    string    `db:"address" json:"address"`
	PlanID     int       `db:"plan_id" json:"plan_id"`
	JoinDate   time.Time `db:"join_date" json:"join_date"`
	ExpiryDate time.Time `db:"expiry_date" json:"expiry_date"`
	Status     Status    `db:"status" json:"status"`
	ImageURL   string    `db:"image_url" json:"image_url"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

type CreateMemberRequest struct {
	Name     string `json:"name" form:"name" binding:"required"`
	Email    string `json:"email" form:"email" binding:"required,email"`
	Phone    string `json:"phone" form:"phone"`
	Address  string `json:"address" form:"address"`
	PlanID   int    `json:"plan_id" form:"plan_id" binding:"required"`
	JoinDate string `json:"join_date" form:"join_date" binding:"required"`
	ImageURL string `json:"image_url" form:"-"`
}

type UpdateMemberRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	PlanID   int    `json:"plan_id" binding:"required"`
	JoinDate string `json:"join_date" binding:"required"`

	// ConfirmExpiryUpdate is only consulted when the plan or join date
	// differs from the stored record. nil means the caller has not been
	// asked yet; true recomputes expiry, false keeps the stored one.
	ConfirmExpiryUpdate *bool `json:"confirm_expiry_update,omitempty"`
}

type RenewMemberRequest struct {
	ExpiryDate string `json:"expiry_date" binding:"required"`
}

type CreateMemberResponse struct {
	Member      *Member `json:"member"`
	UploadError string  `json:"upload_error,omitempty"`
}
