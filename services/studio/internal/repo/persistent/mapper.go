package persistent

import (
	"studio-portfolio/services/studio/internal/entity"
	"studio-portfolio/services/studio/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:          m.ID,
		Name:        m.Name,
		Email:       m.Email,
		Password:    m.Password,
		AvatarURL:   m.AvatarURL,
		Bio:         m.Bio,
		Role:        entity.UserRole(m.Role),
		IsActive:    m.IsActive,
		LastLoginAt: m.LastLoginAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func ToUserModel(e *entity.User) *model.UserModel {
	if e == nil {
		return nil
	}

	return &model.UserModel{
		ID:          e.ID,
		Name:        e.Name,
		Email:       e.Email,
		Password:    e.Password,
		AvatarURL:   e.AvatarURL,
		Bio:         e.Bio,
		Role:        string(e.Role),
		IsActive:    e.IsActive,
		LastLoginAt: e.LastLoginAt,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func ToMediaEntity(d *model.MediaDocument) *entity.Media {
	if d == nil {
		return nil
	}

	media := &entity.Media{
		ID:          d.ID.Hex(),
		Kind:        entity.MediaKind(d.Kind),
		Title:       d.Title,
		Description: d.Description,
		Category:    entity.Category(d.Category),
		Tags:        d.Tags,
		UploadedBy:  d.UploadedBy,
		IsPublic:    d.IsPublic,
		IsFeatured:  d.IsFeatured,
		Likes:       d.Likes,
		LikesCount:  int64(len(d.Likes)),
		Views:       d.Views,
		PublicID:    d.PublicID,
		ObjectKeys:  d.ObjectKeys,
		URLs: entity.MediaURLs{
			Original:    d.URLs.Original,
			Thumbnail:   d.URLs.Thumbnail,
			Medium:      d.URLs.Medium,
			Large:       d.URLs.Large,
			Watermarked: d.URLs.Watermarked,
		},
		Metadata: entity.MediaMetadata{
			Width:           d.Metadata.Width,
			Height:          d.Metadata.Height,
			Format:          d.Metadata.Format,
			Size:            d.Metadata.Size,
			DurationSeconds: d.Metadata.DurationSeconds,
		},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	if media.Tags == nil {
		media.Tags = []string{}
	}

	media.Comments = make([]entity.Comment, len(d.Comments))
	for i := range d.Comments {
		media.Comments[i] = ToCommentEntity(&d.Comments[i])
	}

	return media
}

// ToMediaDocument leaves the document ID unset when e.ID is not a valid hex
// ObjectID.
func ToMediaDocument(e *entity.Media) *model.MediaDocument {
	if e == nil {
		return nil
	}

	doc := &model.MediaDocument{
		Kind:        string(e.Kind),
		Title:       e.Title,
		Description: e.Description,
		Category:    string(e.Category),
		Tags:        e.Tags,
		UploadedBy:  e.UploadedBy,
		IsPublic:    e.IsPublic,
		IsFeatured:  e.IsFeatured,
		Likes:       e.Likes,
		LikesCount:  int64(len(e.Likes)),
		Views:       e.Views,
		PublicID:    e.PublicID,
		ObjectKeys:  e.ObjectKeys,
		URLs: model.MediaURLsDocument{
			Original:    e.URLs.Original,
			Thumbnail:   e.URLs.Thumbnail,
			Medium:      e.URLs.Medium,
			Large:       e.URLs.Large,
			Watermarked: e.URLs.Watermarked,
		},
		Metadata: model.MediaMetadataDocument{
			Width:           e.Metadata.Width,
			Height:          e.Metadata.Height,
			Format:          e.Metadata.Format,
			Size:            e.Metadata.Size,
			DurationSeconds: e.Metadata.DurationSeconds,
		},
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
	if id, err := primitive.ObjectIDFromHex(e.ID); err == nil {
		doc.ID = id
	}
	if doc.Tags == nil {
		doc.Tags = []string{}
	}
	if doc.Likes == nil {
		doc.Likes = []string{}
	}

	doc.Comments = make([]model.CommentDocument, len(e.Comments))
	for i := range e.Comments {
		doc.Comments[i] = ToCommentDocument(&e.Comments[i])
	}

	return doc
}

func ToCommentEntity(d *model.CommentDocument) entity.Comment {
	return entity.Comment{
		ID:        d.ID.Hex(),
		UserID:    d.UserID,
		UserName:  d.UserName,
		Text:      d.Text,
		CreatedAt: d.CreatedAt,
	}
}

func ToCommentDocument(e *entity.Comment) model.CommentDocument {
	doc := model.CommentDocument{
		UserID:    e.UserID,
		UserName:  e.UserName,
		Text:      e.Text,
		CreatedAt: e.CreatedAt,
	}
	if id, err := primitive.ObjectIDFromHex(e.ID); err == nil {
		doc.ID = id
	} else {
		doc.ID = primitive.NewObjectID()
	}
	return doc
}

func ToContactEntity(d *model.ContactDocument) *entity.ContactMessage {
	if d == nil {
		return nil
	}

	return &entity.ContactMessage{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Phone:     d.Phone,
		Service:   d.Service,
		Message:   d.Message,
		Handled:   d.Handled,
		CreatedAt: d.CreatedAt,
	}
}

func ToContactDocument(e *entity.ContactMessage) *model.ContactDocument {
	if e == nil {
		return nil
	}

	doc := &model.ContactDocument{
		Name:      e.Name,
		Email:     e.Email,
		Phone:     e.Phone,
		Service:   e.Service,
		Message:   e.Message,
		Handled:   e.Handled,
		CreatedAt: e.CreatedAt,
	}
	if id, err := primitive.ObjectIDFromHex(e.ID); err == nil {
		doc.ID = id
	}
	return doc
}
