package usecase

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"strings"

	"studio-portfolio/pkg/imaging"
	"studio-portfolio/services/studio/internal/entity"

	"github.com/gabriel-vasile/mimetype"
)

const mib = 1 << 20

var allowedTypes = map[entity.MediaKind][]string{
	entity.KindPhoto: {"image/jpeg", "image/png", "image/gif", "image/webp"},
	entity.KindVideo: {"video/mp4", "video/quicktime", "video/webm"},
}

var extensions = map[string]string{
	"image/jpeg":      "jpg",
	"image/png":       "png",
	"image/gif":       "gif",
	"image/webp":      "webp",
	"video/mp4":       "mp4",
	"video/quicktime": "mov",
	"video/webm":      "webm",
}

// checkedFile is an upload whose size, declared type and content have been
// validated. ContentType is the sniffed type.
type checkedFile struct {
	file        multipart.File
	size        int64
	contentType string
	extension   string
}

func (f *checkedFile) Close() error {
	return f.file.Close()
}

// openChecked validates fh against the allowlist for kind and returns the
// opened file rewound to the start.
func openChecked(fh *multipart.FileHeader, kind entity.MediaKind, maxBytes int64) (*checkedFile, error) {
	if fh == nil {
		return nil, fmt.Errorf("%w: file is required", ErrInvalidInput)
	}
	if fh.Size <= 0 {
		return nil, fmt.Errorf("%w: file is empty", ErrInvalidInput)
	}
	if maxBytes > 0 && fh.Size > maxBytes {
		return nil, fmt.Errorf("%w: limit is %d MB", ErrFileTooLarge, maxBytes/mib)
	}

	declared := normalizeContentType(fh.Header.Get("Content-Type"))
	if !isAllowed(kind, declared) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMedia, declared)
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	detected, err := mimetype.DetectReader(src)
	if err != nil {
		src.Close()
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	sniffed := allowedMatch(kind, detected)
	if sniffed == "" {
		src.Close()
		return nil, fmt.Errorf("%w: content is %s", ErrUnsupportedMedia, detected.String())
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		src.Close()
		return nil, fmt.Errorf("failed to rewind file: %w", err)
	}

	return &checkedFile{
		file:        src,
		size:        fh.Size,
		contentType: sniffed,
		extension:   extensions[sniffed],
	}, nil
}

func normalizeContentType(value string) string {
	mediaType, _, err := mime.ParseMediaType(value)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(value))
	}
	if mediaType == "image/jpg" || mediaType == "image/pjpeg" {
		return "image/jpeg"
	}
	return mediaType
}

func isAllowed(kind entity.MediaKind, contentType string) bool {
	for _, allowed := range allowedTypes[kind] {
		if allowed == contentType {
			return true
		}
	}
	return false
}

func allowedMatch(kind entity.MediaKind, detected *mimetype.MIME) string {
	for _, allowed := range allowedTypes[kind] {
		if detected.Is(allowed) {
			return allowed
		}
	}
	return ""
}

// objectKey is <kind>s/<user>/<upload id>/<variant>.<ext>.
func objectKey(prefix, variant, ext string) string {
	return fmt.Sprintf("%s/%s.%s", prefix, variant, ext)
}

func keyPrefix(kind entity.MediaKind, userID, uploadID string) string {
	return fmt.Sprintf("%s/%s/%s", kind.Collection(), userID, uploadID)
}

// decodeError maps an imaging failure to the upload error reported to clients.
func decodeError(err error) error {
	if errors.Is(err, imaging.ErrTooManyPixels) {
		return fmt.Errorf("%w: %v", ErrFileTooLarge, err)
	}
	return fmt.Errorf("%w: %v", ErrUnsupportedMedia, err)
}
