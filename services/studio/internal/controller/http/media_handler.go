package http

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"studio-portfolio/pkg/logger"
	"studio-portfolio/services/studio/internal/entity"
	"studio-portfolio/services/studio/internal/usecase"

	"github.com/gin-gonic/gin"
)

// uploadOverhead is allowed on top of the file limit for the other form parts.
const uploadOverhead = 1 << 20

// MediaHandler serves the routes of one media kind. The photos and videos
// routers are two instances of it.
type MediaHandler struct {
	mediaUseCase usecase.MediaUseCase
	maxBodyBytes int64
	logger       *logger.Logger
}

func NewMediaHandler(mediaUseCase usecase.MediaUseCase, maxUploadBytes int64, logger *logger.Logger) *MediaHandler {
	return &MediaHandler{
		mediaUseCase: mediaUseCase,
		maxBodyBytes: maxUploadBytes + maxPosterOverhead(mediaUseCase.Kind()) + uploadOverhead,
		logger:       logger,
	}
}

func kindLabel(kind entity.MediaKind) string {
	if kind == entity.KindVideo {
		return "Video"
	}
	return "Photo"
}

func maxPosterOverhead(kind entity.MediaKind) int64 {
	if kind == entity.KindVideo {
		return 15 << 20
	}
	return 0
}

type MediaResponse struct {
	ID            string               `json:"id"`
	Kind          entity.MediaKind     `json:"kind"`
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	Category      entity.Category      `json:"category"`
	Tags          []string             `json:"tags"`
	UploadedBy    string               `json:"uploaded_by"`
	IsPublic      bool                 `json:"is_public"`
	IsFeatured    bool                 `json:"is_featured"`
	LikesCount    int64                `json:"likes_count"`
	CommentsCount int                  `json:"comments_count"`
	IsLiked       *bool                `json:"is_liked,omitempty"`
	Views         int64                `json:"views"`
	PublicID      string               `json:"public_id"`
	URLs          entity.MediaURLs     `json:"urls"`
	Metadata      entity.MediaMetadata `json:"metadata"`
	Comments      []entity.Comment     `json:"comments,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

type MediaListResponse struct {
	Items      []MediaResponse   `json:"items"`
	Pagination entity.Pagination `json:"pagination"`
}

type LikeResponse struct {
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likes_count"`
}

type UpdateMediaRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Tags        *[]string `json:"tags"`
	IsPublic    *bool     `json:"is_public"`
	IsFeatured  *bool     `json:"is_featured"`
	UploadedBy  *string   `json:"uploaded_by"`
}

type CommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// formatMedia hides the likes array. Comments are only included in detail
// responses.
func formatMedia(m *entity.Media, viewer entity.Viewer, withComments bool) MediaResponse {
	resp := MediaResponse{
		ID:            m.ID,
		Kind:          m.Kind,
		Title:         m.Title,
		Description:   m.Description,
		Category:      m.Category,
		Tags:          m.Tags,
		UploadedBy:    m.UploadedBy,
		IsPublic:      m.IsPublic,
		IsFeatured:    m.IsFeatured,
		LikesCount:    m.LikesCount,
		CommentsCount: len(m.Comments),
		Views:         m.Views,
		PublicID:      m.PublicID,
		URLs:          m.URLs,
		Metadata:      m.Metadata,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	if !viewer.IsAnonymous() {
		liked := m.LikedBy(viewer.UserID)
		resp.IsLiked = &liked
	}
	if withComments {
		resp.Comments = m.Comments
		if resp.Comments == nil {
			resp.Comments = []entity.Comment{}
		}
	}
	return resp
}

func formatMediaList(items []*entity.Media, viewer entity.Viewer) []MediaResponse {
	out := make([]MediaResponse, 0, len(items))
	for _, m := range items {
		out = append(out, formatMedia(m, viewer, false))
	}
	return out
}

func (h *MediaHandler) listFilter(c *gin.Context) (entity.MediaFilter, error) {
	filter := entity.MediaFilter{
		Tag:        strings.ToLower(strings.TrimSpace(c.Query("tag"))),
		Search:     strings.TrimSpace(c.Query("search")),
		UploadedBy: strings.TrimSpace(c.Query("uploaded_by")),
		Sort:       entity.ParseMediaSort(c.Query("sort")),
	}
	if raw := strings.TrimSpace(c.Query("category")); raw != "" {
		category, ok := entity.ParseCategory(raw)
		if !ok {
			return filter, fmt.Errorf("%w: unknown category %q", usecase.ErrInvalidInput, raw)
		}
		filter.Category = category
	}
	featured, ok := boolQuery(c, "featured")
	if !ok {
		return filter, fmt.Errorf("%w: featured must be true or false", usecase.ErrInvalidInput)
	}
	filter.Featured = featured != nil && *featured
	return filter, nil
}

func (h *MediaHandler) respondList(c *gin.Context, filter entity.MediaFilter) {
	viewer := viewerFrom(c)
	page, limit := pageQuery(c)

	items, pagination, err := h.mediaUseCase.List(c.Request.Context(), viewer, filter, page, limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, MediaListResponse{Items: formatMediaList(items, viewer), Pagination: pagination})
}

// List godoc
// @Summary      List media
// @Description  Paginated listing of visible records. Anonymous callers see public records, users also see their own, admins see everything.
// @Tags         media
// @Produce      json
// @Param        kind path string true "photos or videos" Enums(photos, videos)
// @Param        category query string false "Category"
// @Param        tag query string false "Single tag"
// @Param        search query string false "Case-insensitive title/description match"
// @Param        featured query bool false "Only featured"
// @Param        uploaded_by query string false "Uploader id"
// @Param        sort query string false "Sort order" Enums(newest, oldest, popular, liked)
// @Param        page query int false "Page (default 1)"
// @Param        limit query int false "Page size (default 12, max 100)"
// @Success      200  {object}  MediaListResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /{kind} [get]
func (h *MediaHandler) List(c *gin.Context) {
	filter, err := h.listFilter(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.respondList(c, filter)
}

// ListByUser godoc
// @Summary      List media of one uploader
// @Tags         media
// @Produce      json
// @Param        kind path string true "photos or videos" Enums(photos, videos)
// @Param        user_id path string true "Uploader id"
// @Success      200  {object}  MediaListResponse
// @Router       /{kind}/user/{user_id} [get]
func (h *MediaHandler) ListByUser(c *gin.Context) {
	filter, err := h.listFilter(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	filter.UploadedBy = c.Param("user_id")
	h.respondList(c, filter)
}

// ListLiked godoc
// @Summary      List media liked by the caller
// @Tags         media
// @Produce      json
// @Security     BearerAuth
// @Param        kind path string true "photos or videos" Enums(photos, videos)
// @Success      200  {object}  MediaListResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /{kind}/liked [get]
func (h *MediaHandler) ListLiked(c *gin.Context) {
	filter, err := h.listFilter(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	filter.LikedBy = viewerFrom(c).UserID
	h.respondList(c, filter)
}

// Featured godoc
// @Summary      Featured media
// @Tags         media
// @Produce      json
// @Param        kind path string true "photos or videos" Enums(photos, videos)
// @Param        limit query int false "Count (default 6, max 24)"
// @Success      200  {object}  map[string][]MediaResponse
// @Router       /{kind}/featured [get]
func (h *MediaHandler) Featured(c *gin.Context) {
	viewer := viewerFrom(c)
	limit, _ := strconv.Atoi(c.Query("limit"))

	items, err := h.mediaUseCase.Featured(c.Request.Context(), viewer, limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": formatMediaList(items, viewer)})
}

// Categories godoc
// @Summary      Record count per category
// @Tags         media
// @Produce      json
// @Param        kind path string true "photos or videos" Enums(photos, videos)
// @Success      200  {object}  map[string]int64
// @Router       /{kind}/categories [get]
func (h *MediaHandler) Categories(c *gin.Context) {
	counts, err := h.mediaUseCase.Categories(c.Request.Context(), viewerFrom(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": counts})
}

// Get godoc
// @Summary      Get media by id
// @Description  Returns the record with comments and counts a view once per viewer per day.
// @Tags         media
// @Produce      json
// @Param        kind path string true "photos or videos" Enums(photos, videos)
// @Param        id path string true "Record id"
// @Success      200  {object}  MediaResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /{kind}/{id} [get]
func (h *MediaHandler) Get(c *gin.Context) {
	viewer := viewerFrom(c)
	viewerKey := viewer.UserID
	if viewerKey == "" {
		viewerKey = c.ClientIP()
	}

	media, err := h.mediaUseCase.Get(c.Request.Context(), viewer, c.Param("id"), viewerKey)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, formatMedia(media, viewer, true))
}

// Upload godoc
// @Summary      Upload media
// @Description  Photographers and admins upload a photo (variants are generated) or a video with an optional poster image.
// @Tags         media
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        kind path string true "photos or videos" Enums(photos, videos)
// @Param        file formData file true "Media file"
// @Param        thumbnail formData file false "Poster image (videos only)"
// @Param        title formData string true "Title"
// @Param        description formData string false "Description"
// @Param        category formData string false "Category"
// @Param        tags formData string false "Comma separated tags"
// @Param        is_public formData bool false "Visible to everyone (default true)"
// @Param        is_featured formData bool false "Featured (admin only)"
// @Param        duration_seconds formData number false "Video duration"
// @Success      201  {object}  MediaResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      413  {object}  ErrorResponse
// @Failure      415  {object}  ErrorResponse
// @Router       /{kind} [post]
func (h *MediaHandler) Upload(c *gin.Context) {
	viewer := viewerFrom(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)

	file, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "Request body too large"})
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file is required"})
		return
	}

	input := usecase.MediaInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
		Tags:        splitTags(c.PostForm("tags")),
	}
	if raw := c.PostForm("is_public"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "is_public must be true or false"})
			return
		}
		input.IsPublic = &v
	}
	if raw := c.PostForm("is_featured"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "is_featured must be true or false"})
			return
		}
		input.IsFeatured = v
	}

	var poster *multipart.FileHeader
	if h.mediaUseCase.Kind() == entity.KindVideo {
		if fh, err := c.FormFile("thumbnail"); err == nil {
			poster = fh
		}
		if raw := c.PostForm("duration_seconds"); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil || v < 0 {
				c.JSON(http.StatusBadRequest, ErrorResponse{Error: "duration_seconds must be a positive number"})
				return
			}
			input.DurationSeconds = v
		}
	}

	media, err := h.mediaUseCase.Upload(c.Request.Context(), viewer, input, file, poster)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, formatMedia(media, viewer, true))
}

// Update godoc
// @Summary      Update media
// @Description  Owner or admin edits metadata. Only admins may feature or reassign.
// @Tags         media
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        kind path string true "photos or videos" Enums(photos, videos)
// @Param        id path string true "Record id"
// @Param        request body UpdateMediaRequest true "Fields to change"
// @Success      200  {object}  MediaResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /{kind}/{id} [put]
func (h *MediaHandler) Update(c *gin.Context) {
	viewer := viewerFrom(c)

	var req UpdateMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	media, err := h.mediaUseCase.Update(c.Request.Context(), viewer, c.Param("id"), usecase.MediaUpdate{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Tags:        req.Tags,
		IsPublic:    req.IsPublic,
		IsFeatured:  req.IsFeatured,
		UploadedBy:  req.UploadedBy,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, formatMedia(media, viewer, true))
}

// Delete godoc
// @Summary      Delete media
// @Tags         media
// @Produce      json
// @Security     BearerAuth
// @Param        kind path string true "photos or videos" Enums(photos, videos)
// @Param        id path string true "Record id"
// @Success      200  {object}  MessageResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /{kind}/{id} [delete]
func (h *MediaHandler) Delete(c *gin.Context) {
	if err := h.mediaUseCase.Delete(c.Request.Context(), viewerFrom(c), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: kindLabel(h.mediaUseCase.Kind()) + " deleted"})
}

// ToggleLike godoc
// @Summary      Like or unlike
// @Tags         media
// @Produce      json
// @Security     BearerAuth
// @Param        kind path string true "photos or videos" Enums(photos, videos)
// @Param        id path string true "Record id"
// @Success      200  {object}  LikeResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /{kind}/{id}/like [post]
func (h *MediaHandler) ToggleLike(c *gin.Context) {
	liked, count, err := h.mediaUseCase.ToggleLike(c.Request.Context(), viewerFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, LikeResponse{Liked: liked, LikesCount: count})
}

// AddComment godoc
// @Summary      Comment on media
// @Tags         media
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        kind path string true "photos or videos" Enums(photos, videos)
// @Param        id path string true "Record id"
// @Param        request body CommentRequest true "Comment"
// @Success      201  {object}  entity.Comment
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /{kind}/{id}/comments [post]
func (h *MediaHandler) AddComment(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	comment, err := h.mediaUseCase.AddComment(c.Request.Context(), viewerFrom(c), c.Param("id"), req.Text)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Tags         media
// @Produce      json
// @Security     BearerAuth
// @Param        kind path string true "photos or videos" Enums(photos, videos)
// @Param        id path string true "Record id"
// @Param        comment_id path string true "Comment id"
// @Success      200  {object}  MessageResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /{kind}/{id}/comments/{comment_id} [delete]
func (h *MediaHandler) DeleteComment(c *gin.Context) {
	if err := h.mediaUseCase.DeleteComment(c.Request.Context(), viewerFrom(c), c.Param("id"), c.Param("comment_id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Comment deleted"})
}
