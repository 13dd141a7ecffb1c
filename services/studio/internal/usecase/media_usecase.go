package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"sync"
	"unicode/utf8"

	"studio-portfolio/pkg/imaging"
	"studio-portfolio/pkg/logger"
	"studio-portfolio/pkg/queue"
	"studio-portfolio/services/studio/internal/entity"
	"studio-portfolio/services/studio/internal/repo/persistent"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	MaxTitleLength       = 120
	MaxDescriptionLength = 2000
	MaxTags              = 20
	MaxCommentLength     = 1000

	DefaultFeaturedLimit = 6
	MaxFeaturedLimit     = 24

	maxPosterBytes = 15 * mib
)

// MediaInput carries the metadata fields of an upload.
type MediaInput struct {
	Title           string
	Description     string
	Category        string
	Tags            []string
	IsPublic        *bool
	IsFeatured      bool
	DurationSeconds float64
}

// MediaUpdate holds the fields to change. Nil means unchanged.
type MediaUpdate struct {
	Title       *string
	Description *string
	Category    *string
	Tags        *[]string
	IsPublic    *bool
	IsFeatured  *bool
	UploadedBy  *string
}

type MediaUseCase interface {
	Kind() entity.MediaKind
	List(ctx context.Context, viewer entity.Viewer, filter entity.MediaFilter, page, limit int) ([]*entity.Media, entity.Pagination, error)
	Featured(ctx context.Context, viewer entity.Viewer, limit int) ([]*entity.Media, error)
	Categories(ctx context.Context, viewer entity.Viewer) (map[entity.Category]int64, error)
	Get(ctx context.Context, viewer entity.Viewer, id, viewerKey string) (*entity.Media, error)
	Upload(ctx context.Context, viewer entity.Viewer, input MediaInput, file, poster *multipart.FileHeader) (*entity.Media, error)
	Update(ctx context.Context, viewer entity.Viewer, id string, update MediaUpdate) (*entity.Media, error)
	Delete(ctx context.Context, viewer entity.Viewer, id string) error
	ToggleLike(ctx context.Context, viewer entity.Viewer, id string) (bool, int64, error)
	AddComment(ctx context.Context, viewer entity.Viewer, id, text string) (*entity.Comment, error)
	DeleteComment(ctx context.Context, viewer entity.Viewer, id, commentID string) error
	CountByUploader(ctx context.Context, userID string) (int64, error)
	PurgeUploader(ctx context.Context, userID string) (int64, error)
}

type mediaUseCase struct {
	mediaRepo      persistent.MediaRepository
	userRepo       persistent.UserRepository
	store          MediaStore
	processor      *imaging.Processor
	views          ViewTracker
	cleanup        CleanupPublisher
	maxUploadBytes int64
	logger         *logger.Logger
}

// NewMediaUseCase serves one media kind. cleanup may be nil, in which case
// objects that cannot be deleted are only logged.
func NewMediaUseCase(
	mediaRepo persistent.MediaRepository,
	userRepo persistent.UserRepository,
	store MediaStore,
	processor *imaging.Processor,
	views ViewTracker,
	cleanup CleanupPublisher,
	maxUploadBytes int64,
	logger *logger.Logger,
) MediaUseCase {
	return &mediaUseCase{
		mediaRepo:      mediaRepo,
		userRepo:       userRepo,
		store:          store,
		processor:      processor,
		views:          views,
		cleanup:        cleanup,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

func (uc *mediaUseCase) Kind() entity.MediaKind {
	return uc.mediaRepo.Kind()
}

func (uc *mediaUseCase) List(ctx context.Context, viewer entity.Viewer, filter entity.MediaFilter, page, limit int) ([]*entity.Media, entity.Pagination, error) {
	page, limit = entity.NormalizePage(page, limit)
	if filter.LikedBy != "" && filter.LikedBy != viewer.UserID && !viewer.IsAdmin() {
		return nil, entity.Pagination{}, ErrForbidden
	}

	items, total, err := uc.mediaRepo.List(ctx, filter, viewer, limit, entity.Offset(page, limit))
	if err != nil {
		uc.logger.Error("Failed to list %s: %v", uc.Kind(), err)
		return nil, entity.Pagination{}, fmt.Errorf("failed to list %s", uc.Kind().Collection())
	}
	return items, entity.NewPagination(page, limit, total), nil
}

func (uc *mediaUseCase) Featured(ctx context.Context, viewer entity.Viewer, limit int) ([]*entity.Media, error) {
	if limit < 1 {
		limit = DefaultFeaturedLimit
	}
	if limit > MaxFeaturedLimit {
		limit = MaxFeaturedLimit
	}
	items, _, err := uc.mediaRepo.List(ctx, entity.MediaFilter{Featured: true, Sort: entity.SortNewest}, viewer, limit, 0)
	if err != nil {
		uc.logger.Error("Failed to list featured %s: %v", uc.Kind(), err)
		return nil, fmt.Errorf("failed to list featured %s", uc.Kind().Collection())
	}
	return items, nil
}

func (uc *mediaUseCase) Categories(ctx context.Context, viewer entity.Viewer) (map[entity.Category]int64, error) {
	counts, err := uc.mediaRepo.CategoryCounts(ctx, viewer)
	if err != nil {
		uc.logger.Error("Failed to count %s categories: %v", uc.Kind(), err)
		return nil, fmt.Errorf("failed to count categories")
	}
	return counts, nil
}

// Get returns a visible record and counts the view once per viewerKey per day.
func (uc *mediaUseCase) Get(ctx context.Context, viewer entity.Viewer, id, viewerKey string) (*entity.Media, error) {
	media, err := uc.mediaRepo.GetVisible(ctx, id, viewer)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if uc.views.ShouldCount(ctx, uc.Kind(), media.ID, viewerKey) {
		if err := uc.mediaRepo.IncrementViews(ctx, media.ID); err != nil {
			uc.logger.Warn("Failed to increment views for %s %s: %v", uc.Kind(), media.ID, err)
		} else {
			media.Views++
		}
	}
	return media, nil
}

func (uc *mediaUseCase) Upload(ctx context.Context, viewer entity.Viewer, input MediaInput, file, poster *multipart.FileHeader) (*entity.Media, error) {
	if !viewer.Role.CanUpload() {
		return nil, fmt.Errorf("%w: only photographers and admins can upload", ErrForbidden)
	}
	if input.IsFeatured && !viewer.IsAdmin() {
		return nil, fmt.Errorf("%w: only admins can feature media", ErrForbidden)
	}

	media, err := newMedia(uc.Kind(), viewer.UserID, input)
	if err != nil {
		return nil, err
	}

	if _, err := uc.userRepo.GetByID(viewer.UserID); err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return nil, fmt.Errorf("%w: uploader no longer exists", ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to load uploader: %w", err)
	}

	checked, err := openChecked(file, uc.Kind(), uc.maxUploadBytes)
	if err != nil {
		return nil, err
	}
	defer checked.Close()

	prefix := keyPrefix(uc.Kind(), viewer.UserID, uuid.New().String())
	uploads := &uploadSet{}

	if uc.Kind() == entity.KindPhoto {
		err = uc.storePhoto(ctx, prefix, checked, media, uploads)
	} else {
		err = uc.storeVideo(ctx, prefix, checked, poster, media, uploads)
	}
	if err != nil {
		uc.discard(ctx, uploads.Keys(), "upload_failed")
		return nil, err
	}

	media.PublicID = prefix
	media.ObjectKeys = uploads.Keys()

	if err := uc.mediaRepo.Create(ctx, media); err != nil {
		uc.logger.Error("Failed to save %s metadata: %v", uc.Kind(), err)
		uc.discard(ctx, media.ObjectKeys, "metadata_insert_failed")
		return nil, fmt.Errorf("failed to save %s", uc.Kind())
	}

	uc.logger.Info("Stored %s %s for user %s (%d objects)", uc.Kind(), media.ID, viewer.UserID, len(media.ObjectKeys))
	return media, nil
}

func (uc *mediaUseCase) storePhoto(ctx context.Context, prefix string, checked *checkedFile, media *entity.Media, uploads *uploadSet) error {
	data, err := io.ReadAll(checked.file)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	img, format, err := uc.processor.Decode(bytes.NewReader(data))
	if err != nil {
		return decodeError(err)
	}
	renditions, err := uc.processor.Renditions(img)
	if err != nil {
		return fmt.Errorf("failed to process image: %w", err)
	}

	media.Metadata = entity.MediaMetadata{
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
		Format: format,
		Size:   checked.size,
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		url, err := uploads.Put(gctx, uc.store, objectKey(prefix, "original", checked.extension), bytes.NewReader(data), checked.contentType)
		if err != nil {
			return err
		}
		mu.Lock()
		media.URLs.Original = url
		mu.Unlock()
		return nil
	})

	for _, r := range renditions {
		g.Go(func() error {
			url, err := uploads.Put(gctx, uc.store, objectKey(prefix, string(r.Variant), "jpg"), bytes.NewReader(r.Data), r.ContentType)
			if err != nil {
				return err
			}
			mu.Lock()
			setVariantURL(&media.URLs, r.Variant, url)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		uc.logger.Error("Failed to upload photo objects under %s: %v", prefix, err)
		return fmt.Errorf("failed to upload photo")
	}
	return nil
}

func (uc *mediaUseCase) storeVideo(ctx context.Context, prefix string, checked *checkedFile, poster *multipart.FileHeader, media *entity.Media, uploads *uploadSet) error {
	media.Metadata.Format = checked.extension
	media.Metadata.Size = checked.size

	var thumbnail *imaging.Rendition
	if poster != nil {
		r, err := uc.posterThumbnail(poster)
		if err != nil {
			return err
		}
		thumbnail = &r
	}

	url, err := uploads.Put(ctx, uc.store, objectKey(prefix, "original", checked.extension), checked.file, checked.contentType)
	if err != nil {
		uc.logger.Error("Failed to upload video under %s: %v", prefix, err)
		return fmt.Errorf("failed to upload video")
	}
	media.URLs.Original = url

	if thumbnail != nil {
		url, err := uploads.Put(ctx, uc.store, objectKey(prefix, string(imaging.VariantThumbnail), "jpg"), bytes.NewReader(thumbnail.Data), thumbnail.ContentType)
		if err != nil {
			uc.logger.Error("Failed to upload video poster under %s: %v", prefix, err)
			return fmt.Errorf("failed to upload video thumbnail")
		}
		media.URLs.Thumbnail = url
		media.Metadata.Width = thumbnail.Width
		media.Metadata.Height = thumbnail.Height
	}
	return nil
}

func (uc *mediaUseCase) posterThumbnail(poster *multipart.FileHeader) (imaging.Rendition, error) {
	checked, err := openChecked(poster, entity.KindPhoto, maxPosterBytes)
	if err != nil {
		return imaging.Rendition{}, fmt.Errorf("thumbnail: %w", err)
	}
	defer checked.Close()

	img, _, err := uc.processor.Decode(checked.file)
	if err != nil {
		return imaging.Rendition{}, fmt.Errorf("thumbnail: %w", decodeError(err))
	}
	return uc.processor.Thumbnail(img)
}

func (uc *mediaUseCase) Update(ctx context.Context, viewer entity.Viewer, id string, update MediaUpdate) (*entity.Media, error) {
	media, err := uc.mediaRepo.GetVisible(ctx, id, viewer)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if !viewer.CanEdit(media) {
		return nil, fmt.Errorf("%w: only the owner or an admin can edit this %s", ErrForbidden, uc.Kind())
	}

	if update.IsFeatured != nil && *update.IsFeatured != media.IsFeatured && !viewer.IsAdmin() {
		return nil, fmt.Errorf("%w: only admins can feature media", ErrForbidden)
	}
	if update.UploadedBy != nil && *update.UploadedBy != media.UploadedBy {
		if !viewer.IsAdmin() {
			return nil, fmt.Errorf("%w: only admins can reassign media", ErrForbidden)
		}
		if _, err := uc.userRepo.GetByID(*update.UploadedBy); err != nil {
			if errors.Is(err, persistent.ErrNotFound) {
				return nil, fmt.Errorf("%w: uploaded_by user does not exist", ErrInvalidInput)
			}
			return nil, fmt.Errorf("failed to load user: %w", err)
		}
		media.UploadedBy = *update.UploadedBy
	}

	if update.Title != nil {
		media.Title = strings.TrimSpace(*update.Title)
	}
	if update.Description != nil {
		media.Description = strings.TrimSpace(*update.Description)
	}
	if update.Category != nil {
		category, ok := entity.ParseCategory(*update.Category)
		if !ok {
			return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, *update.Category)
		}
		media.Category = category
	}
	if update.Tags != nil {
		media.Tags = entity.NormalizeTags(*update.Tags)
	}
	if update.IsPublic != nil {
		media.IsPublic = *update.IsPublic
	}
	if update.IsFeatured != nil {
		media.IsFeatured = *update.IsFeatured
	}

	if err := validateMedia(media); err != nil {
		return nil, err
	}

	if err := uc.mediaRepo.Update(ctx, media); err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return nil, ErrNotFound
		}
		uc.logger.Error("Failed to update %s %s: %v", uc.Kind(), id, err)
		return nil, fmt.Errorf("failed to update %s", uc.Kind())
	}
	return media, nil
}

// Delete removes host objects first. Objects the host refuses to delete are
// queued for the cleanup worker and do not block the metadata delete.
func (uc *mediaUseCase) Delete(ctx context.Context, viewer entity.Viewer, id string) error {
	if !viewer.IsAdmin() {
		return fmt.Errorf("%w: only admins can delete media", ErrForbidden)
	}

	media, err := uc.mediaRepo.GetByID(ctx, id)
	if err != nil {
		return mapRepoError(err)
	}

	uc.discard(ctx, media.ObjectKeys, "media_deleted")

	if err := uc.mediaRepo.Delete(ctx, media.ID); err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return ErrNotFound
		}
		uc.logger.Error("Failed to delete %s %s: %v", uc.Kind(), id, err)
		return fmt.Errorf("failed to delete %s", uc.Kind())
	}
	return nil
}

func (uc *mediaUseCase) ToggleLike(ctx context.Context, viewer entity.Viewer, id string) (bool, int64, error) {
	if viewer.IsAnonymous() {
		return false, 0, ErrUnauthorized
	}

	media, err := uc.mediaRepo.GetVisible(ctx, id, viewer)
	if err != nil {
		return false, 0, mapRepoError(err)
	}

	count := media.LikesCount
	if media.LikedBy(viewer.UserID) {
		removed, err := uc.mediaRepo.RemoveLike(ctx, media.ID, viewer.UserID)
		if err != nil {
			uc.logger.Error("Failed to unlike %s %s: %v", uc.Kind(), id, err)
			return false, 0, fmt.Errorf("failed to update like")
		}
		if removed && count > 0 {
			count--
		}
		return false, count, nil
	}

	added, err := uc.mediaRepo.AddLike(ctx, media.ID, viewer.UserID)
	if err != nil {
		uc.logger.Error("Failed to like %s %s: %v", uc.Kind(), id, err)
		return false, 0, fmt.Errorf("failed to update like")
	}
	if added {
		count++
	}
	return true, count, nil
}

func (uc *mediaUseCase) AddComment(ctx context.Context, viewer entity.Viewer, id, text string) (*entity.Comment, error) {
	if viewer.IsAnonymous() {
		return nil, ErrUnauthorized
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: comment text is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(text) > MaxCommentLength {
		return nil, fmt.Errorf("%w: comment exceeds %d characters", ErrInvalidInput, MaxCommentLength)
	}

	media, err := uc.mediaRepo.GetVisible(ctx, id, viewer)
	if err != nil {
		return nil, mapRepoError(err)
	}

	author, err := uc.userRepo.GetByID(viewer.UserID)
	if err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	comment := &entity.Comment{UserID: author.ID, UserName: author.Name, Text: text}
	if err := uc.mediaRepo.AddComment(ctx, media.ID, comment); err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return nil, ErrNotFound
		}
		uc.logger.Error("Failed to add comment to %s %s: %v", uc.Kind(), id, err)
		return nil, fmt.Errorf("failed to add comment")
	}
	return comment, nil
}

func (uc *mediaUseCase) DeleteComment(ctx context.Context, viewer entity.Viewer, id, commentID string) error {
	if viewer.IsAnonymous() {
		return ErrUnauthorized
	}

	media, err := uc.mediaRepo.GetVisible(ctx, id, viewer)
	if err != nil {
		return mapRepoError(err)
	}

	comment, ok := media.FindComment(commentID)
	if !ok {
		return ErrNotFound
	}
	if comment.UserID != viewer.UserID && !viewer.IsAdmin() {
		return fmt.Errorf("%w: only the author or an admin can delete this comment", ErrForbidden)
	}

	if err := uc.mediaRepo.RemoveComment(ctx, media.ID, commentID); err != nil {
		return mapRepoError(err)
	}
	return nil
}

func (uc *mediaUseCase) CountByUploader(ctx context.Context, userID string) (int64, error) {
	return uc.mediaRepo.CountByUploader(ctx, userID)
}

// PurgeUploader deletes every record uploaded by userID together with its
// host objects.
func (uc *mediaUseCase) PurgeUploader(ctx context.Context, userID string) (int64, error) {
	items, err := uc.mediaRepo.ListByUploader(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to list %s of user %s: %w", uc.Kind().Collection(), userID, err)
	}

	var keys []string
	for _, m := range items {
		keys = append(keys, m.ObjectKeys...)
	}
	uc.discard(ctx, keys, "user_deleted")

	deleted, err := uc.mediaRepo.DeleteByUploader(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete %s of user %s: %w", uc.Kind().Collection(), userID, err)
	}
	return deleted, nil
}

// discard deletes keys at the host and queues whatever could not be deleted.
func (uc *mediaUseCase) discard(ctx context.Context, keys []string, reason string) {
	if len(keys) == 0 {
		return
	}
	ctx = context.WithoutCancel(ctx)

	var failed []string
	for _, key := range keys {
		if err := uc.store.Delete(ctx, key); err != nil {
			uc.logger.Warn("Failed to delete object %s: %v", key, err)
			failed = append(failed, key)
		}
	}
	if len(failed) == 0 {
		return
	}

	if uc.cleanup == nil {
		uc.logger.Error("Orphaned objects left at media host (no cleanup queue): %v", failed)
		return
	}
	task := queue.CleanupTask{Keys: failed, Reason: reason}
	if err := uc.cleanup.PublishCleanupTask(ctx, task); err != nil {
		uc.logger.Error("Failed to enqueue cleanup of %d objects: %v", len(failed), err)
	}
}

func newMedia(kind entity.MediaKind, uploaderID string, input MediaInput) (*entity.Media, error) {
	category, ok := entity.ParseCategory(input.Category)
	if !ok {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, input.Category)
	}

	media := &entity.Media{
		Kind:        kind,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Category:    category,
		Tags:        entity.NormalizeTags(input.Tags),
		UploadedBy:  uploaderID,
		IsPublic:    true,
		IsFeatured:  input.IsFeatured,
		Likes:       []string{},
		Comments:    []entity.Comment{},
	}
	if input.IsPublic != nil {
		media.IsPublic = *input.IsPublic
	}
	if kind == entity.KindVideo && input.DurationSeconds > 0 {
		media.Metadata.DurationSeconds = input.DurationSeconds
	}

	if err := validateMedia(media); err != nil {
		return nil, err
	}
	return media, nil
}

func validateMedia(m *entity.Media) error {
	if m.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(m.Title) > MaxTitleLength {
		return fmt.Errorf("%w: title exceeds %d characters", ErrInvalidInput, MaxTitleLength)
	}
	if utf8.RuneCountInString(m.Description) > MaxDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalidInput, MaxDescriptionLength)
	}
	if len(m.Tags) > MaxTags {
		return fmt.Errorf("%w: at most %d tags allowed", ErrInvalidInput, MaxTags)
	}
	return nil
}

func setVariantURL(urls *entity.MediaURLs, variant imaging.Variant, url string) {
	switch variant {
	case imaging.VariantThumbnail:
		urls.Thumbnail = url
	case imaging.VariantMedium:
		urls.Medium = url
	case imaging.VariantLarge:
		urls.Large = url
	case imaging.VariantWatermarked:
		urls.Watermarked = url
	}
}

// uploadSet records which keys reached the host so they can be rolled back.
type uploadSet struct {
	mu   sync.Mutex
	keys []string
}

func (s *uploadSet) Put(ctx context.Context, store MediaStore, key string, body io.Reader, contentType string) (string, error) {
	url, err := store.Upload(ctx, key, body, contentType)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.keys = append(s.keys, key)
	s.mu.Unlock()
	return url, nil
}

func (s *uploadSet) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.keys...)
}

func mapRepoError(err error) error {
	switch {
	case errors.Is(err, persistent.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, persistent.ErrInvalidID):
		return ErrInvalidID
	default:
		return err
	}
}
