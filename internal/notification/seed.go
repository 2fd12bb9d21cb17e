// File: internal/notification/seed.go
package notification

import "time"

// seedFeed builds the starter feed with ages relative to now, matching the
// freshness the original client fakes.
func seedFeed(now time.Time) []Notification {
	return []Notification{
		{
			ID:        "notif1",
			Type:      TypeNewReview,
			Message:   `Alex D. left a 5-star review on your listing "Cozy Studio in Saburtalo".`,
			CreatedAt: now.Add(-5 * time.Minute),
			Link:      "/listing/1",
		},
		{
			ID:        "notif2",
			Type:      TypeListingApproved,
			Message:   `Congratulations! Your listing "IKEA Study Desk" has been approved and is now public.`,
			CreatedAt: now.Add(-2 * time.Hour),
			Link:      "/listing/5",
		},
		{
			ID:        "notif3",
			Type:      TypeNewMessage,
			Message:   "You have a new message from Sophie B. regarding your ad.",
			Read:      true,
			CreatedAt: now.Add(-24 * time.Hour),
			Link:      "/messages/convo2",
		},
		{
			ID:        "notif4",
			Type:      TypeSystem,
			Message:   "Welcome to Yalla.ge! We are happy to have you on board.",
			Read:      true,
			CreatedAt: now.Add(-48 * time.Hour),
		},
	}
}
