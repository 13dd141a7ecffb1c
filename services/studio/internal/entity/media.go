package entity

import (
	"strings"
	"time"
)

type MediaKind string

const (
	KindPhoto MediaKind = "photo"
	KindVideo MediaKind = "video"
)

// Collection is the document collection holding records of this kind.
func (k MediaKind) Collection() string {
	if k == KindVideo {
		return "videos"
	}
	return "photos"
}

type Category string

const (
	CategoryWedding    Category = "wedding"
	CategoryPortrait   Category = "portrait"
	CategoryEvent      Category = "event"
	CategoryCommercial Category = "commercial"
	CategoryFamily     Category = "family"
	CategoryFashion    Category = "fashion"
	CategoryNature     Category = "nature"
	CategoryOther      Category = "other"
)

var Categories = []Category{
	CategoryWedding,
	CategoryPortrait,
	CategoryEvent,
	CategoryCommercial,
	CategoryFamily,
	CategoryFashion,
	CategoryNature,
	CategoryOther,
}

// ParseCategory normalises s. Empty input maps to CategoryOther.
func ParseCategory(s string) (Category, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CategoryOther, true
	}
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

type MediaURLs struct {
	Original    string `json:"original"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	Medium      string `json:"medium,omitempty"`
	Large       string `json:"large,omitempty"`
	Watermarked string `json:"watermarked,omitempty"`
}

type MediaMetadata struct {
	Width           int     `json:"width,omitempty"`
	Height          int     `json:"height,omitempty"`
	Format          string  `json:"format,omitempty"`
	Size            int64   `json:"size"`
	DurationSeconds float64 `json:"duration_seconds,omitempty"`
}

type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Media is a photo or video record. PublicID is the key prefix of the
// record's objects at the media host; ObjectKeys lists every stored object.
type Media struct {
	ID          string        `json:"id"`
	Kind        MediaKind     `json:"kind"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Category    Category      `json:"category"`
	Tags        []string      `json:"tags"`
	UploadedBy  string        `json:"uploaded_by"`
	IsPublic    bool          `json:"is_public"`
	IsFeatured  bool          `json:"is_featured"`
	Likes       []string      `json:"-"`
	LikesCount  int64         `json:"likes_count"`
	Comments    []Comment     `json:"comments"`
	Views       int64         `json:"views"`
	PublicID    string        `json:"public_id"`
	ObjectKeys  []string      `json:"-"`
	URLs        MediaURLs     `json:"urls"`
	Metadata    MediaMetadata `json:"metadata"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (m *Media) LikedBy(userID string) bool {
	if userID == "" {
		return false
	}
	for _, id := range m.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

func (m *Media) FindComment(commentID string) (*Comment, bool) {
	for i := range m.Comments {
		if m.Comments[i].ID == commentID {
			return &m.Comments[i], true
		}
	}
	return nil, false
}

type MediaSort string

const (
	SortNewest  MediaSort = "newest"
	SortOldest  MediaSort = "oldest"
	SortPopular MediaSort = "popular"
	SortLiked   MediaSort = "liked"
)

func ParseMediaSort(s string) MediaSort {
	switch MediaSort(strings.ToLower(s)) {
	case SortOldest:
		return SortOldest
	case SortPopular:
		return SortPopular
	case SortLiked:
		return SortLiked
	}
	return SortNewest
}

// MediaFilter narrows a listing. Zero values mean "no constraint".
type MediaFilter struct {
	Category   Category
	Tag        string
	Search     string
	Featured   bool
	UploadedBy string
	LikedBy    string
	Sort       MediaSort
}

// NormalizeTags lowercases, trims and de-duplicates tags, keeping order.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
