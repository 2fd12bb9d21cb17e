// File: internal/listing/store.go

// Package listing holds the classifieds catalog: the built-in seed entries
// plus everything the current user has posted, with reviews nested under
// each listing.
package listing

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/mohdalimj86-del/yalla.ge/internal/account"
	"github.com/mohdalimj86-del/yalla.ge/internal/common"
	"github.com/mohdalimj86-del/yalla.ge/internal/platform/crypto"
	"github.com/mohdalimj86-del/yalla.ge/internal/storage"

	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

// Store owns the listing collection. User-created listings are ordered
// newest-first ahead of the seed catalog and are the only part persisted;
// seed entries (and reviews added to them) live for the process run only.
type Store struct {
	mu     sync.Mutex
	scopes *storage.Scopes
	ids    *crypto.IDGenerator
	logger *zap.Logger

	listings []Listing
	seedIDs  map[int64]struct{}
}

// NewStore loads the persisted user listings and lays them ahead of the seed
// catalog. A corrupt record is discarded and the catalog starts from seeds
// alone.
func NewStore(scopes *storage.Scopes, ids *crypto.IDGenerator, logger *zap.Logger) *Store {
	s := &Store{
		scopes:  scopes,
		ids:     ids,
		logger:  logger,
		seedIDs: make(map[int64]struct{}),
	}

	seeds := SeedCatalog()
	for i := range seeds {
		s.seedIDs[seeds[i].ID] = struct{}{}
	}

	var saved []Listing
	found, err := storage.ReadJSON(context.Background(), scopes.Durable, storage.KeyUserListings, &saved)
	if err != nil {
		logger.Warn("Discarding corrupt saved listings, starting from seed catalog", zap.Error(err))
		saved = nil
	} else if !found {
		saved = nil
	}

	s.listings = append(saved, seeds...)
	return s
}

// All returns every listing, user-created entries first.
func (s *Store) All(ctx context.Context) []Listing {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Listing, len(s.listings))
	for i := range s.listings {
		out[i] = s.listings[i].clone()
	}
	return out
}

// ByCategory returns listings of one category, preserving overall order.
func (s *Store) ByCategory(ctx context.Context, category Category) []Listing {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Listing
	for i := range s.listings {
		if s.listings[i].Category == category {
			out = append(out, s.listings[i].clone())
		}
	}
	return out
}

// Get returns one listing by id.
func (s *Store) Get(ctx context.Context, id int64) (*Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := s.findLocked(id)
	if l == nil {
		return nil, common.ErrNotFound.WithDetails("Listing not found.")
	}
	cp := l.clone()
	return &cp, nil
}

// GetBySlug resolves a listing from its share URL slug.
func (s *Store) GetBySlug(ctx context.Context, slugValue string) (*Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.listings {
		if s.listings[i].Slug == slugValue {
			cp := s.listings[i].clone()
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound.WithDetails("Listing not found.")
}

// Create adds a listing authored by the given account and prepends it so it
// shows ahead of the seed catalog.
func (s *Store) Create(ctx context.Context, req *CreateListingRequest, author *account.Account) (*Listing, error) {
	if author == nil {
		return nil, common.ErrUnauthorized.WithDetails("Sign in to post a listing.")
	}
	if req.Category == CategoryExplore && req.Price != nil {
		return nil, common.ErrBadRequest.WithDetails("Explore listings do not carry a price.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	l := Listing{
		ID:          s.ids.Next(),
		Category:    req.Category,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Location:    req.Location,
		Author:      author.Name,
		AuthorID:    author.ID,
		Slug:        slug.Make(req.Title),
	}

	s.listings = append([]Listing{l}, s.listings...)
	if err := s.persistLocked(ctx); err != nil {
		s.listings = s.listings[1:]
		return nil, err
	}

	cp := l.clone()
	s.logger.Info("Listing created", zap.Int64("id", l.ID), zap.String("title", l.Title))
	return &cp, nil
}

// AddReview prepends a review to a listing. Author identity fields are
// snapshotted from the account at write time. Sub-scores outside the
// listing category's criteria set are rejected.
func (s *Store) AddReview(ctx context.Context, listingID int64, req *AddReviewRequest, author *account.Account) (*Review, error) {
	if author == nil {
		return nil, common.ErrUnauthorized.WithDetails("Sign in to leave a review.")
	}
	if len(req.Photos) > MaxReviewPhotos {
		return nil, common.ErrBadRequest.WithDetails("A review can carry at most 4 photos.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.findLocked(listingID)
	if l == nil {
		return nil, common.ErrNotFound.WithDetails("Listing not found.")
	}
	rating, err := ratingForCategory(l.Category, &req.Rating)
	if err != nil {
		return nil, err
	}

	avatar := ""
	if author.Picture != nil {
		avatar = *author.Picture
	} else if author.AvatarURL != nil {
		avatar = *author.AvatarURL
	}

	review := Review{
		ID:           s.ids.Next(),
		ListingID:    l.ID,
		AuthorID:     author.ID,
		AuthorName:   author.Name,
		AuthorAvatar: avatar,
		AuthorBadges: append([]account.Badge(nil), author.Badges...),
		Rating:       *rating,
		Comment:      req.Comment,
		Photos:       append([]string{}, req.Photos...),
		CreatedAt:    time.Now().UTC(),
	}

	l.Reviews = append([]Review{review}, l.Reviews...)
	if err := s.persistLocked(ctx); err != nil {
		l.Reviews = l.Reviews[1:]
		return nil, err
	}

	cp := review.clone()
	return &cp, nil
}

// VoteReview bumps a review's helpful or not-helpful counter and returns the
// updated review.
func (s *Store) VoteReview(ctx context.Context, listingID, reviewID int64, helpful bool) (*Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.findLocked(listingID)
	if l == nil {
		return nil, common.ErrNotFound.WithDetails("Listing not found.")
	}
	for i := range l.Reviews {
		if l.Reviews[i].ID != reviewID {
			continue
		}
		if helpful {
			l.Reviews[i].HelpfulVotes++
		} else {
			l.Reviews[i].NotHelpfulVotes++
		}
		if err := s.persistLocked(ctx); err != nil {
			if helpful {
				l.Reviews[i].HelpfulVotes--
			} else {
				l.Reviews[i].NotHelpfulVotes--
			}
			return nil, err
		}
		cp := l.Reviews[i].clone()
		return &cp, nil
	}
	return nil, common.ErrNotFound.WithDetails("Review not found.")
}

// ReplyToReview sets the listing owner's single reply under a review.
func (s *Store) ReplyToReview(ctx context.Context, listingID, reviewID int64, comment string, requester *account.Account) (*Review, error) {
	if requester == nil {
		return nil, common.ErrUnauthorized
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.findLocked(listingID)
	if l == nil {
		return nil, common.ErrNotFound.WithDetails("Listing not found.")
	}
	if !ownedBy(l, requester) {
		return nil, common.ErrForbidden.WithDetails("Only the listing owner can reply to reviews.")
	}
	for i := range l.Reviews {
		if l.Reviews[i].ID != reviewID {
			continue
		}
		if l.Reviews[i].Reply != nil {
			return nil, common.ErrConflict.WithDetails("This review already has a reply.")
		}
		l.Reviews[i].Reply = &ReviewReply{
			AuthorName: requester.Name,
			Comment:    comment,
			CreatedAt:  time.Now().UTC(),
		}
		if err := s.persistLocked(ctx); err != nil {
			l.Reviews[i].Reply = nil
			return nil, err
		}
		cp := l.Reviews[i].clone()
		return &cp, nil
	}
	return nil, common.ErrNotFound.WithDetails("Review not found.")
}

// Delete removes a listing owned by the requester. Seed entries cannot be
// deleted.
func (s *Store) Delete(ctx context.Context, id int64, requester *account.Account) error {
	if requester == nil {
		return common.ErrUnauthorized
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.listings {
		if s.listings[i].ID != id {
			continue
		}
		if _, isSeed := s.seedIDs[id]; isSeed {
			return common.ErrForbidden.WithDetails("Built-in listings cannot be deleted.")
		}
		if !ownedBy(&s.listings[i], requester) {
			return common.ErrForbidden.WithDetails("Only the listing owner can delete it.")
		}
		removed := s.listings[i]
		s.listings = append(s.listings[:i], s.listings[i+1:]...)
		if err := s.persistLocked(ctx); err != nil {
			s.listings = append(s.listings[:i], append([]Listing{removed}, s.listings[i:]...)...)
			return err
		}
		s.logger.Info("Listing deleted", zap.Int64("id", id))
		return nil
	}
	return common.ErrNotFound.WithDetails("Listing not found.")
}

// Search does a case-insensitive substring match over title, description and
// location, preserving overall order.
func (s *Store) Search(ctx context.Context, query string) []Listing {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return s.All(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Listing
	for i := range s.listings {
		l := &s.listings[i]
		if strings.Contains(strings.ToLower(l.Title), q) ||
			strings.Contains(strings.ToLower(l.Description), q) ||
			strings.Contains(strings.ToLower(l.Location), q) {
			out = append(out, l.clone())
		}
	}
	return out
}

// ByAuthor returns the listings owned by an account, user order preserved.
func (s *Store) ByAuthor(ctx context.Context, acct *account.Account) []Listing {
	if acct == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Listing
	for i := range s.listings {
		if ownedBy(&s.listings[i], acct) {
			out = append(out, s.listings[i].clone())
		}
	}
	return out
}

// IsSeed reports whether an id belongs to the built-in catalog.
func (s *Store) IsSeed(id int64) bool {
	_, ok := s.seedIDs[id]
	return ok
}

func (s *Store) findLocked(id int64) *Listing {
	for i := range s.listings {
		if s.listings[i].ID == id {
			return &s.listings[i]
		}
	}
	return nil
}

// persistLocked is the single save path for the collection: it rewrites the
// full user-created subset under one key. Seed entries never reach storage.
func (s *Store) persistLocked(ctx context.Context) error {
	var user []Listing
	for i := range s.listings {
		if _, isSeed := s.seedIDs[s.listings[i].ID]; !isSeed {
			user = append(user, s.listings[i])
		}
	}
	if err := storage.WriteJSON(ctx, s.scopes.Durable, storage.KeyUserListings, user); err != nil {
		s.logger.Error("Failed to persist user listings", zap.Error(err))
		return common.ErrInternalServer.WithDetails("Could not save listings.")
	}
	return nil
}

// ownedBy matches by author id when the listing carries one, falling back to
// the display name for entries saved before ids existed.
func ownedBy(l *Listing, acct *account.Account) bool {
	if l.AuthorID != "" {
		return l.AuthorID == acct.ID
	}
	return l.Author == acct.Name
}

// ratingForCategory validates the submitted scores against the category's
// criteria set and builds the stored rating.
func ratingForCategory(category Category, req *RatingDetailsRequest) (*RatingDetails, error) {
	allowed := AllowedCriteria(category)
	check := func(name string, v *int) error {
		if v != nil && !allowed[name] {
			return common.ErrBadRequest.WithDetails("Sub-score '" + name + "' does not apply to " + string(category) + " listings.")
		}
		return nil
	}
	for name, v := range map[string]*int{
		"accuracy":      req.Accuracy,
		"communication": req.Communication,
		"value":         req.Value,
		"service":       req.Service,
	} {
		if err := check(name, v); err != nil {
			return nil, err
		}
	}
	return &RatingDetails{
		Overall:       req.Overall,
		Accuracy:      req.Accuracy,
		Communication: req.Communication,
		Value:         req.Value,
		Service:       req.Service,
	}, nil
}
