// File: internal/listing/seed.go
package listing

import (
	"time"

	"github.com/mohdalimj86-del/yalla.ge/internal/account"

	"github.com/gosimple/slug"
)

func strPtr(s string) *string    { return &s }
func intPtr(i int) *int          { return &i }
func floatPtr(f float64) *float64 { return &f }

func seedTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic("bad seed timestamp: " + value)
	}
	return t
}

// SeedCatalog returns the built-in catalog shown to every fresh session.
// Seed entries are identified by their fixed ids 1..9; reviews added to them
// at runtime stay in memory and are not persisted.
func SeedCatalog() []Listing {
	listings := []Listing{
		{
			ID:          1,
			Category:    CategoryAccommodation,
			Title:       "Cozy Studio in Saburtalo",
			Description: "A small but comfortable studio apartment near the Technical University metro station. Perfect for a single student.",
			Price:       strPtr("800 GEL/month"),
			ImageURL:    "https://picsum.photos/seed/acc1/600/400",
			Location:    "Saburtalo, Tbilisi",
			Author:      "Nino K.",
			Reviews: []Review{
				{
					ID:           101,
					ListingID:    1,
					AuthorID:     "user1",
					AuthorName:   "Alex D.",
					AuthorAvatar: "https://i.pravatar.cc/150?u=alex",
					AuthorBadges: []account.Badge{account.BadgeVerifiedReviewer},
					Rating:       RatingDetails{Overall: 5, Accuracy: intPtr(5), Communication: intPtr(5), Value: intPtr(5)},
					Comment:      "Absolutely perfect for a student. The location is amazing, right next to the metro. Nino was a great host, very communicative. Highly recommend!",
					Photos:       []string{"https://picsum.photos/seed/rev1/200/200", "https://picsum.photos/seed/rev2/200/200"},
					CreatedAt:    seedTime("2023-09-15T10:00:00Z"),
					HelpfulVotes: 12,
				},
				{
					ID:           102,
					ListingID:    1,
					AuthorID:     "user2",
					AuthorName:   "Sophie B.",
					AuthorAvatar: "https://i.pravatar.cc/150?u=sophie",
					Rating:       RatingDetails{Overall: 4, Accuracy: intPtr(4), Communication: intPtr(5), Value: intPtr(4)},
					Comment:      "Great place, a bit smaller than expected but very clean and has everything you need. The host is very responsive.",
					Photos:       []string{},
					CreatedAt:    seedTime("2023-10-01T14:30:00Z"),
					HelpfulVotes: 5, NotHelpfulVotes: 1,
				},
			},
		},
		{
			ID:          2,
			Category:    CategoryAccommodation,
			Title:       "Shared Room in Vake",
			Description: "Looking for a female roommate to share a spacious room in a 3-bedroom apartment. Close to Vake Park and Ilia State University.",
			Price:       strPtr("500 GEL/month"),
			ImageURL:    "https://picsum.photos/seed/acc2/600/400",
			Location:    "Vake, Tbilisi",
			Author:      "Mariam L.",
		},
		{
			ID:          3,
			Category:    CategoryAccommodation,
			Title:       "Modern 2-Bedroom Flat",
			Description: "Fully furnished modern apartment with two separate bedrooms. Ideal for two friends. Includes central heating and a balcony.",
			Price:       strPtr("1500 GEL/month"),
			ImageURL:    "https://picsum.photos/seed/acc3/600/400",
			Location:    "Gldani, Tbilisi",
			Author:      "Giorgi B.",
		},
		{
			ID:          4,
			Category:    CategoryMarketplace,
			Title:       "Used MacBook Air M1",
			Description: "Selling my 2020 MacBook Air M1. 8GB RAM, 256GB SSD. In great condition, comes with the original charger.",
			Price:       strPtr("1800 GEL"),
			ImageURL:    "https://picsum.photos/seed/mkt1/600/400",
			Location:    "Tbilisi",
			Author:      "Luka T.",
			Reviews: []Review{
				{
					ID:           401,
					ListingID:    4,
					AuthorID:     "user3",
					AuthorName:   "Mike R.",
					AuthorAvatar: "https://i.pravatar.cc/150?u=mike",
					AuthorBadges: []account.Badge{account.BadgeTopContributor},
					Rating:       RatingDetails{Overall: 5, Accuracy: intPtr(5), Value: intPtr(5)},
					Comment:      "The MacBook was exactly as described. Met with Luka, very nice guy. The laptop works perfectly. Great value for the price!",
					Photos:       []string{},
					CreatedAt:    seedTime("2023-11-20T18:00:00Z"),
					HelpfulVotes: 25,
					Reply: &ReviewReply{
						AuthorName: "Luka T.",
						Comment:    "Thanks Mike! Glad you like it.",
						CreatedAt:  seedTime("2023-11-21T09:00:00Z"),
					},
				},
			},
		},
		{
			ID:          5,
			Category:    CategoryMarketplace,
			Title:       "IKEA Study Desk",
			Description: "White study desk, almost new. Dimensions: 120cm x 60cm. Perfect for a student room.",
			Price:       strPtr("100 GEL"),
			ImageURL:    "https://picsum.photos/seed/mkt2/600/400",
			Location:    "Kutaisi",
			Author:      "Ana S.",
		},
		{
			ID:          6,
			Category:    CategoryMarketplace,
			Title:       "Electric Guitar Set",
			Description: "Beginner electric guitar with a small amplifier and cable. Barely used.",
			Price:       strPtr("350 GEL"),
			ImageURL:    "https://picsum.photos/seed/mkt3/600/400",
			Location:    "Batumi",
			Author:      "Davit M.",
		},
		{
			ID:          7,
			Category:    CategoryExplore,
			Title:       "Fabrika",
			Description: "A multi-functional urban space with various cafes and bars. Great for hanging out with friends.",
			Rating:      floatPtr(4.8),
			ImageURL:    "https://picsum.photos/seed/res1/600/400",
			Location:    "Marjanishvili, Tbilisi",
			Author:      "Admin",
			Reviews: []Review{
				{
					ID:           701,
					ListingID:    7,
					AuthorID:     "user4",
					AuthorName:   "Elena P.",
					AuthorAvatar: "https://i.pravatar.cc/150?u=elena",
					AuthorBadges: []account.Badge{account.BadgeVerifiedReviewer},
					Rating:       RatingDetails{Overall: 5, Service: intPtr(5), Value: intPtr(4)},
					Comment:      "Fabrika has an incredible vibe. A must-visit place in Tbilisi. So many cool spots to eat, drink, and just hang out. It can get a bit pricey, but the experience is worth it.",
					Photos:       []string{"https://picsum.photos/seed/rev3/200/200"},
					CreatedAt:    seedTime("2023-12-05T20:00:00Z"),
					HelpfulVotes: 18, NotHelpfulVotes: 2,
				},
			},
		},
		{
			ID:          8,
			Category:    CategoryExplore,
			Title:       "Entrecôte",
			Description: "Affordable and delicious Georgian food. Known for its Khinkali and Mtsvadi. Student discount available.",
			Rating:      floatPtr(4.5),
			ImageURL:    "https://picsum.photos/seed/res2/600/400",
			Location:    "Chavchavadze Ave, Tbilisi",
			Author:      "Admin",
		},
		{
			ID:          9,
			Category:    CategoryExplore,
			Title:       "Coffee LAB",
			Description: "Specialty coffee shop with a quiet atmosphere, perfect for studying. Free Wi-Fi and power outlets.",
			Rating:      floatPtr(4.9),
			ImageURL:    "https://picsum.photos/seed/res3/600/400",
			Location:    "Kazbegi Ave, Tbilisi",
			Author:      "Admin",
		},
	}
	for i := range listings {
		listings[i].Slug = slug.Make(listings[i].Title)
	}
	return listings
}
