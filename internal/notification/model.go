// File: internal/notification/model.go
package notification

import "time"

// Type classifies a notification for icon and grouping purposes.
type Type string

const (
	TypeNewReview       Type = "NEW_REVIEW"
	TypeListingApproved Type = "LISTING_APPROVED"
	TypeNewMessage      Type = "NEW_MESSAGE"
	TypePriceChange     Type = "PRICE_CHANGE"
	TypeSystem          Type = "SYSTEM"
)

// Notification is one feed entry. Link, when set, points at the in-app
// destination the entry refers to.
type Notification struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
	Link      string    `json:"link,omitempty"`
}
