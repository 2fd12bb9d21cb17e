// File: internal/listing/handler.go
package listing

import (
	"errors"
	"strconv"

	"github.com/mohdalimj86-del/yalla.ge/internal/account"
	"github.com/mohdalimj86-del/yalla.ge/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler exposes the listing store over HTTP.
type Handler struct {
	store    *Store
	accounts *account.Store
	logger   *zap.Logger
}

// NewHandler creates a new listing handler.
func NewHandler(store *Store, accounts *account.Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, accounts: accounts, logger: logger}
}

// RegisterRoutes sets up the routes for listing operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	listingGroup := router.Group("/listings")
	{
		listingGroup.GET("", h.listListings)
		listingGroup.GET("/:id", h.getListing)
		listingGroup.GET("/slug/:slug", h.getListingBySlug)

		authed := listingGroup.Group("")
		authed.Use(authMW)
		{
			authed.POST("", h.createListing)
			authed.DELETE("/:id", h.deleteListing)
			authed.GET("/my-listings", h.myListings)
			authed.POST("/:id/reviews", h.addReview)
			authed.POST("/:id/reviews/:reviewId/vote", h.voteReview)
			authed.POST("/:id/reviews/:reviewId/reply", h.replyToReview)
		}
	}
}

func (h *Handler) listListings(c *gin.Context) {
	var listings []Listing
	if q := c.Query("q"); q != "" {
		listings = h.store.Search(c.Request.Context(), q)
	} else if cat := c.Query("category"); cat != "" {
		listings = h.store.ByCategory(c.Request.Context(), Category(cat))
	} else {
		listings = h.store.All(c.Request.Context())
	}

	page, pageSize := common.GetPaginationParams(c)
	pageItems, pagination := common.Paginate(ToListingResponses(listings), page, pageSize)
	common.RespondPaginated(c, "Listings retrieved successfully.", pageItems, pagination)
}

func (h *Handler) getListing(c *gin.Context) {
	id, err := parseListingID(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	l, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Listing retrieved successfully.", ToListingResponse(*l))
}

func (h *Handler) getListingBySlug(c *gin.Context) {
	l, err := h.store.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Listing retrieved successfully.", ToListingResponse(*l))
}

func (h *Handler) createListing(c *gin.Context) {
	var req CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request payload: "+err.Error()))
		return
	}

	author := h.accounts.Current()
	if author == nil {
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("No active session."))
		return
	}

	l, err := h.store.Create(c.Request.Context(), &req, author)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Listing created successfully.", ToListingResponse(*l))
}

func (h *Handler) deleteListing(c *gin.Context) {
	id, err := parseListingID(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	requester := h.accounts.Current()
	if requester == nil {
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("No active session."))
		return
	}
	if err := h.store.Delete(c.Request.Context(), id, requester); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}

func (h *Handler) myListings(c *gin.Context) {
	requester := h.accounts.Current()
	if requester == nil {
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("No active session."))
		return
	}
	listings := h.store.ByAuthor(c.Request.Context(), requester)
	common.RespondOK(c, "Listings retrieved successfully.", ToListingResponses(listings))
}

func (h *Handler) addReview(c *gin.Context) {
	id, err := parseListingID(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	var req AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request payload: "+err.Error()))
		return
	}

	author := h.accounts.Current()
	if author == nil {
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("No active session."))
		return
	}

	review, err := h.store.AddReview(c.Request.Context(), id, &req, author)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	// Review activity feeds the reviewer's profile stats and badges.
	h.accounts.IncrementReviewCount(c.Request.Context())

	common.RespondCreated(c, "Review added successfully.", review)
}

func (h *Handler) voteReview(c *gin.Context) {
	listingID, err := parseListingID(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	reviewID, err := parseListingID(c.Param("reviewId"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	var req VoteReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request payload: "+err.Error()))
		return
	}

	review, err := h.store.VoteReview(c.Request.Context(), listingID, reviewID, *req.Helpful)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Vote recorded.", review)
}

func (h *Handler) replyToReview(c *gin.Context) {
	listingID, err := parseListingID(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	reviewID, err := parseListingID(c.Param("reviewId"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	var req struct {
		Comment string `json:"comment" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request payload: "+err.Error()))
		return
	}

	requester := h.accounts.Current()
	if requester == nil {
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("No active session."))
		return
	}

	review, err := h.store.ReplyToReview(c.Request.Context(), listingID, reviewID, req.Comment, requester)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Reply added.", review)
}

func parseListingID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, common.ErrBadRequest.WithDetails("Invalid listing ID format.")
	}
	return id, nil
}
