package maillog

import "time"

// Type identifies the transactional email template.
type Type string

const (
	TypeWelcome           Type = "welcome"
	TypeOrderConfirmation Type = "order-confirmation"
	TypeAdminNotification Type = "admin-notification"
	TypeShipping          Type = "shipping"
	TypePasswordReset     Type = "password-reset"
	TypeContactResponse   Type = "contact-response"
)

func (t Type) Valid() bool {
	switch t {
	case TypeWelcome, TypeOrderConfirmation, TypeAdminNotification,
		TypeShipping, TypePasswordReset, TypeContactResponse:
		return true
	}
	return false
}

const (
	StatusSent   = "sent"
	StatusFailed = "failed"
)

// Entry is one send attempt. Rows are append-only: written once per
// attempt and never mutated afterwards.
type Entry struct {
	ID           int64     `json:"id"`
	EmailType    Type      `json:"emailType"`
	Recipient    string    `json:"recipient"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
