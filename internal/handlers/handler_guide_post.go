package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/borport/borport_backend/internal/core/domain"
	portssvc "github.com/borport/borport_backend/internal/core/ports/services"
	"github.com/borport/borport_backend/internal/dto"
	"github.com/borport/borport_backend/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// defaultAvailabilityDays is the window returned when the client sends no range.
const defaultAvailabilityDays = 90

type guidePostHandler struct {
	postService         portssvc.GuidePostSvcFacade
	availabilityService portssvc.AvailabilitySvc
	reviewService       portssvc.ReviewSvc
	now                 func() time.Time
}

func newGuidePostHandler(ps portssvc.GuidePostSvcFacade, as portssvc.AvailabilitySvc, rs portssvc.ReviewSvc) *guidePostHandler {
	return &guidePostHandler{postService: ps, availabilityService: as, reviewService: rs, now: time.Now}
}

// registerPublicGuidePostRoutes registers listing reads that need no session.
func registerPublicGuidePostRoutes(api *gin.RouterGroup, h *guidePostHandler) {
	posts := api.Group("/guide-posts")
	{
		posts.GET("", h.listGuidePosts)
		posts.GET("/:id", h.getGuidePost)
		posts.GET("/:id/availability", h.getAvailability)
		posts.GET("/:id/reviews", h.listReviews)
	}
}

// registerGuidePostRoutes registers routes that need a session of any role.
func registerGuidePostRoutes(authed *gin.RouterGroup, h *guidePostHandler) {
	posts := authed.Group("/guide-posts")
	{
		posts.POST("/:id/like", h.like)
		posts.DELETE("/:id/like", h.unlike)
		posts.POST("/:id/reviews", h.createReview)
	}
}

// registerGuideListingRoutes registers the guide's own listing management.
func registerGuideListingRoutes(guide *gin.RouterGroup, h *guidePostHandler) {
	posts := guide.Group("/posts")
	{
		posts.GET("", h.listMyGuidePosts)
		posts.POST("", h.createGuidePost)
		posts.PUT("/:id", h.updateGuidePost)
		posts.PUT("/:id/availability", h.setAvailability)
	}
}

// listGuidePosts godoc
// @Summary Browse guide posts
// @Description Lists active guide posts, optionally filtered by text and location.
// @Tags guide-posts
// @Produce json
// @Param q query string false "Search in title and description"
// @Param location query string false "Location contains"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} dto.GuidePostResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /guide-posts [get]
func (h *guidePostHandler) listGuidePosts(c *gin.Context) {
	var params dto.ListGuidePostsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	posts, err := h.postService.ListGuidePosts(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list guide posts")
		return
	}
	c.JSON(http.StatusOK, dto.ToGuidePostListResponse(posts))
}

// getGuidePost godoc
// @Summary Get a guide post
// @Tags guide-posts
// @Produce json
// @Param id path string true "Guide post ID"
// @Success 200 {object} dto.GuidePostResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /guide-posts/{id} [get]
func (h *guidePostHandler) getGuidePost(c *gin.Context) {
	post, err := h.postService.GetGuidePost(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve guide post")
		return
	}
	c.JSON(http.StatusOK, dto.ToGuidePostResponse(post))
}

// listMyGuidePosts godoc
// @Summary List the caller's guide posts
// @Tags guide
// @Produce json
// @Success 200 {array} dto.GuidePostResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /guide/posts [get]
func (h *guidePostHandler) listMyGuidePosts(c *gin.Context) {
	guideID, ok := currentUser(c)
	if !ok {
		return
	}
	posts, err := h.postService.ListGuidePostsByGuide(c.Request.Context(), guideID)
	if err != nil {
		respondError(c, err, "Failed to list guide posts")
		return
	}
	c.JSON(http.StatusOK, dto.ToGuidePostListResponse(posts))
}

// createGuidePost godoc
// @Summary Create a guide post
// @Tags guide
// @Accept json
// @Produce json
// @Param post body dto.CreateGuidePostRequest true "Listing"
// @Success 201 {object} dto.GuidePostResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /guide/posts [post]
func (h *guidePostHandler) createGuidePost(c *gin.Context) {
	var req dto.CreateGuidePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	guideID, ok := currentUser(c)
	if !ok {
		return
	}
	post, err := h.postService.CreateGuidePost(c.Request.Context(), guideID, req)
	if err != nil {
		respondError(c, err, "Failed to create guide post")
		return
	}
	c.JSON(http.StatusCreated, dto.ToGuidePostResponse(post))
}

// updateGuidePost godoc
// @Summary Update a guide post
// @Description Only the owning guide may edit a listing. Omitted fields are left unchanged.
// @Tags guide
// @Accept json
// @Produce json
// @Param id path string true "Guide post ID"
// @Param post body dto.UpdateGuidePostRequest true "Fields to change"
// @Success 200 {object} dto.GuidePostResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /guide/posts/{id} [put]
func (h *guidePostHandler) updateGuidePost(c *gin.Context) {
	var req dto.UpdateGuidePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	guideID, ok := currentUser(c)
	if !ok {
		return
	}
	post, err := h.postService.UpdateGuidePost(c.Request.Context(), guideID, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update guide post")
		return
	}
	c.JSON(http.StatusOK, dto.ToGuidePostResponse(post))
}

// getAvailability godoc
// @Summary Availability of a guide post
// @Description Returns stored availability rows between from and to (inclusive). Days without a row are bookable.
// @Tags guide-posts
// @Produce json
// @Param id path string true "Guide post ID"
// @Param from query string false "First day, YYYY-MM-DD (default today)"
// @Param to query string false "Last day, YYYY-MM-DD (default from + 89 days)"
// @Success 200 {array} dto.AvailabilityResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /guide-posts/{id}/availability [get]
func (h *guidePostHandler) getAvailability(c *gin.Context) {
	var q dto.AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	from := domain.TruncateToDay(h.now().UTC())
	if q.From != "" {
		from, _ = domain.ParseDay(q.From)
	}
	to := from.AddDate(0, 0, defaultAvailabilityDays-1)
	if q.To != "" {
		to, _ = domain.ParseDay(q.To)
	}

	rows, err := h.availabilityService.GetAvailability(c.Request.Context(), c.Param("id"), from, to)
	if err != nil {
		respondError(c, err, "Failed to retrieve availability")
		return
	}
	c.JSON(http.StatusOK, dto.ToAvailabilityListResponse(rows))
}

// setAvailability godoc
// @Summary Open or close days of a guide post
// @Description A day held by a confirmed booking cannot be reopened.
// @Tags guide
// @Accept json
// @Param id path string true "Guide post ID"
// @Param availability body dto.SetAvailabilityRequest true "Days and flag"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /guide/posts/{id}/availability [put]
func (h *guidePostHandler) setAvailability(c *gin.Context) {
	var req dto.SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	guideID, ok := currentUser(c)
	if !ok {
		return
	}
	dates := make([]time.Time, 0, len(req.Dates))
	for _, s := range req.Dates {
		d, err := domain.ParseDay(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid date " + s})
			return
		}
		dates = append(dates, d)
	}
	if err := h.availabilityService.SetAvailability(c.Request.Context(), guideID, c.Param("id"), dates, *req.IsAvailable); err != nil {
		respondError(c, err, "Failed to update availability")
		return
	}
	c.Status(http.StatusNoContent)
}

// like godoc
// @Summary Like a guide post
// @Description Idempotent.
// @Tags guide-posts
// @Produce json
// @Param id path string true "Guide post ID"
// @Success 200 {object} dto.LikeResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /guide-posts/{id}/like [post]
func (h *guidePostHandler) like(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	resp, err := h.postService.Like(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to like guide post")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// unlike godoc
// @Summary Remove a like
// @Description Idempotent.
// @Tags guide-posts
// @Produce json
// @Param id path string true "Guide post ID"
// @Success 200 {object} dto.LikeResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /guide-posts/{id}/like [delete]
func (h *guidePostHandler) unlike(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	resp, err := h.postService.Unlike(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to unlike guide post")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// listReviews godoc
// @Summary Reviews of a guide post
// @Tags guide-posts
// @Produce json
// @Param id path string true "Guide post ID"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} dto.ReviewResponse
// @Failure 500 {object} ErrorResponse
// @Router /guide-posts/{id}/reviews [get]
func (h *guidePostHandler) listReviews(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(pagination.DefaultLimit)))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	reviews, err := h.reviewService.ListReviews(c.Request.Context(), c.Param("id"), limit, offset)
	if err != nil {
		respondError(c, err, "Failed to list reviews")
		return
	}
	c.JSON(http.StatusOK, dto.ToReviewListResponse(reviews))
}

// createReview godoc
// @Summary Review a guide post
// @Description Requires a confirmed booking of the caller for this post whose date has passed. One review per booking.
// @Tags guide-posts
// @Accept json
// @Produce json
// @Param id path string true "Guide post ID"
// @Param review body dto.CreateReviewRequest true "Review"
// @Success 201 {object} dto.ReviewResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /guide-posts/{id}/reviews [post]
func (h *guidePostHandler) createReview(c *gin.Context) {
	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	review, err := h.reviewService.CreateReview(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to create review")
		return
	}
	c.JSON(http.StatusCreated, dto.ToReviewListResponse([]domain.Review{*review})[0])
}
