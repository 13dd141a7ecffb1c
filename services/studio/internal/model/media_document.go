package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MediaURLsDocument struct {
	Original    string `bson:"original"`
	Thumbnail   string `bson:"thumbnail,omitempty"`
	Medium      string `bson:"medium,omitempty"`
	Large       string `bson:"large,omitempty"`
	Watermarked string `bson:"watermarked,omitempty"`
}

type MediaMetadataDocument struct {
	Width           int     `bson:"width,omitempty"`
	Height          int     `bson:"height,omitempty"`
	Format          string  `bson:"format,omitempty"`
	Size            int64   `bson:"size"`
	DurationSeconds float64 `bson:"duration_seconds,omitempty"`
}

type CommentDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	UserID    string             `bson:"user_id"`
	UserName  string             `bson:"user_name"`
	Text      string             `bson:"text"`
	CreatedAt time.Time          `bson:"created_at"`
}

// MediaDocument is the shape shared by the photos and videos collections.
// LikesCount mirrors len(Likes) so listings can sort on it.
type MediaDocument struct {
	ID          primitive.ObjectID    `bson:"_id,omitempty"`
	Kind        string                `bson:"kind"`
	Title       string                `bson:"title"`
	Description string                `bson:"description"`
	Category    string                `bson:"category"`
	Tags        []string              `bson:"tags"`
	UploadedBy  string                `bson:"uploaded_by"`
	IsPublic    bool                  `bson:"is_public"`
	IsFeatured  bool                  `bson:"is_featured"`
	Likes       []string              `bson:"likes"`
	LikesCount  int64                 `bson:"likes_count"`
	Comments    []CommentDocument     `bson:"comments"`
	Views       int64                 `bson:"views"`
	PublicID    string                `bson:"public_id"`
	ObjectKeys  []string              `bson:"object_keys"`
	URLs        MediaURLsDocument     `bson:"urls"`
	Metadata    MediaMetadataDocument `bson:"metadata"`
	CreatedAt   time.Time             `bson:"created_at"`
	UpdatedAt   time.Time             `bson:"updated_at"`
}
