// File: internal/listing/model.go
package listing

import (
	"time"

	"github.com/mohdalimj86-del/yalla.ge/internal/account"
)

// Category of a classified listing. Fixed at creation, mutually exclusive.
type Category string

const (
	CategoryAccommodation Category = "Accommodation"
	CategoryMarketplace   Category = "Marketplace"
	CategoryExplore       Category = "Explore"
)

// Status of a listing's approval lifecycle. Absent means implicitly approved.
type Status string

const (
	StatusApproved Status = "approved"
	StatusPending  Status = "pending"
)

// Listing is a classified entry. JSON field names match the original
// client's storage layout; AuthorID and Slug are additions of this backend
// (stable ownership and share URLs).
type Listing struct {
	ID          int64    `json:"id"`
	Category    Category `json:"category"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	// Price is present for Accommodation/Marketplace and absent for Explore,
	// which instead carries a fixed baseline rating from the seed catalog.
	Price    *string  `json:"price,omitempty"`
	ImageURL string   `json:"imageUrl"`
	Location string   `json:"location"`
	Author   string   `json:"author"`
	AuthorID string   `json:"authorId,omitempty"`
	Slug     string   `json:"slug,omitempty"`
	Rating   *float64 `json:"rating,omitempty"`
	Status   *Status  `json:"status,omitempty"`
	Reviews  []Review `json:"reviews,omitempty"`
}

// RatingDetails holds the overall score and the category-dependent
// sub-scores. Accommodation reviews rate accuracy/communication/value,
// marketplace accuracy/value, explore service/value.
type RatingDetails struct {
	Overall       int  `json:"overall"`
	Accuracy      *int `json:"accuracy,omitempty"`
	Communication *int `json:"communication,omitempty"`
	Value         *int `json:"value,omitempty"`
	Service       *int `json:"service,omitempty"`
}

// ReviewReply is the single optional listing-owner reply under a review.
type ReviewReply struct {
	AuthorName string    `json:"authorName"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Review is nested under exactly one listing. The author fields are a
// snapshot taken at write time and are never refreshed from the live
// account.
type Review struct {
	ID              int64           `json:"id"`
	ListingID       int64           `json:"listingId"`
	AuthorID        string          `json:"authorId"`
	AuthorName      string          `json:"authorName"`
	AuthorAvatar    string          `json:"authorAvatar,omitempty"`
	AuthorBadges    []account.Badge `json:"authorBadges,omitempty"`
	Rating          RatingDetails   `json:"rating"`
	Comment         string          `json:"comment"`
	Photos          []string        `json:"photos"`
	CreatedAt       time.Time       `json:"createdAt"`
	HelpfulVotes    int             `json:"helpfulVotes"`
	NotHelpfulVotes int             `json:"notHelpfulVotes"`
	Reply           *ReviewReply    `json:"reply,omitempty"`
}

// MaxReviewPhotos caps the number of photos attached to one review.
const MaxReviewPhotos = 4

// AverageRating re-derives the mean of all review overall scores on every
// call; it is never cached. With zero reviews, Explore listings fall back to
// their seed baseline rating and other categories report no rating.
func (l *Listing) AverageRating() *float64 {
	if len(l.Reviews) == 0 {
		if l.Category == CategoryExplore {
			return l.Rating
		}
		return nil
	}
	sum := 0
	for i := range l.Reviews {
		sum += l.Reviews[i].Rating.Overall
	}
	avg := float64(sum) / float64(len(l.Reviews))
	return &avg
}

// AllowedCriteria reports which sub-score fields apply to a category.
func AllowedCriteria(category Category) map[string]bool {
	switch category {
	case CategoryAccommodation:
		return map[string]bool{"accuracy": true, "communication": true, "value": true}
	case CategoryMarketplace:
		return map[string]bool{"accuracy": true, "value": true}
	case CategoryExplore:
		return map[string]bool{"service": true, "value": true}
	default:
		return nil
	}
}

// clone returns a deep copy so store-owned state never leaks by reference.
func (l *Listing) clone() Listing {
	cp := *l
	if l.Price != nil {
		v := *l.Price
		cp.Price = &v
	}
	if l.Rating != nil {
		v := *l.Rating
		cp.Rating = &v
	}
	if l.Status != nil {
		v := *l.Status
		cp.Status = &v
	}
	if l.Reviews != nil {
		cp.Reviews = make([]Review, len(l.Reviews))
		for i := range l.Reviews {
			cp.Reviews[i] = l.Reviews[i].clone()
		}
	}
	return cp
}

func (r *Review) clone() Review {
	cp := *r
	cp.Rating = r.Rating.clone()
	if r.AuthorBadges != nil {
		cp.AuthorBadges = append([]account.Badge(nil), r.AuthorBadges...)
	}
	if r.Photos != nil {
		cp.Photos = append([]string(nil), r.Photos...)
	}
	if r.Reply != nil {
		v := *r.Reply
		cp.Reply = &v
	}
	return cp
}

func (rd RatingDetails) clone() RatingDetails {
	cp := rd
	copyInt := func(p *int) *int {
		if p == nil {
			return nil
		}
		v := *p
		return &v
	}
	cp.Accuracy = copyInt(rd.Accuracy)
	cp.Communication = copyInt(rd.Communication)
	cp.Value = copyInt(rd.Value)
	cp.Service = copyInt(rd.Service)
	return cp
}

// --- DTOs for API requests ---

// CreateListingRequest defines the payload for the add-listing flow.
type CreateListingRequest struct {
	Category    Category `json:"category" binding:"required,oneof=Accommodation Marketplace Explore"`
	Title       string   `json:"title" binding:"required,min=3,max=255"`
	Description string   `json:"description" binding:"required,min=10"`
	Price       *string  `json:"price,omitempty" binding:"omitempty,max=100"`
	ImageURL    string   `json:"imageUrl" binding:"required"`
	Location    string   `json:"location" binding:"required,max=255"`
}

// AddReviewRequest defines the payload for review submission.
type AddReviewRequest struct {
	Rating  RatingDetailsRequest `json:"rating" binding:"required"`
	Comment string               `json:"comment" binding:"required,min=1"`
	Photos  []string             `json:"photos" binding:"omitempty,max=4"`
}

// RatingDetailsRequest mirrors RatingDetails for request binding.
type RatingDetailsRequest struct {
	Overall       int  `json:"overall" binding:"required,gte=1,lte=5"`
	Accuracy      *int `json:"accuracy,omitempty" binding:"omitempty,gte=1,lte=5"`
	Communication *int `json:"communication,omitempty" binding:"omitempty,gte=1,lte=5"`
	Value         *int `json:"value,omitempty" binding:"omitempty,gte=1,lte=5"`
	Service       *int `json:"service,omitempty" binding:"omitempty,gte=1,lte=5"`
}

// VoteReviewRequest flags a review as helpful or not.
type VoteReviewRequest struct {
	Helpful *bool `json:"helpful" binding:"required"`
}

// ListingResponse augments a listing with its derived average rating.
type ListingResponse struct {
	Listing
	AverageRating *float64 `json:"averageRating,omitempty"`
}

// ToListingResponse builds the response shape for one listing.
func ToListingResponse(l Listing) ListingResponse {
	return ListingResponse{Listing: l, AverageRating: l.AverageRating()}
}

// ToListingResponses builds response shapes for a collection.
func ToListingResponses(listings []Listing) []ListingResponse {
	out := make([]ListingResponse, len(listings))
	for i := range listings {
		out[i] = ToListingResponse(listings[i])
	}
	return out
}
