package persistent

import (
	"context"
	"fmt"
	"time"

	"studio-portfolio/services/studio/internal/entity"
	"studio-portfolio/services/studio/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const contactCollection = "contacts"

type ContactRepository interface {
	Create(ctx context.Context, msg *entity.ContactMessage) error
	List(ctx context.Context, handled *bool, limit, offset int) ([]*entity.ContactMessage, int64, error)
	SetHandled(ctx context.Context, id string, handled bool) error
}

type contactRepository struct {
	collection *mongo.Collection
}

func NewContactRepository(db *mongo.Database) ContactRepository {
	return &contactRepository{collection: db.Collection(contactCollection)}
}

func (r *contactRepository) Create(ctx context.Context, msg *entity.ContactMessage) error {
	doc := ToContactDocument(msg)
	doc.ID = primitive.NewObjectID()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return err
	}
	*msg = *ToContactEntity(doc)
	return nil
}

func (r *contactRepository) List(ctx context.Context, handled *bool, limit, offset int) ([]*entity.ContactMessage, int64, error) {
	filter := bson.D{}
	if handled != nil {
		filter = bson.D{{Key: "handled", Value: *handled}}
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count contacts: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit)).SetSkip(int64(offset))
	}
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []model.ContactDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode contacts: %w", err)
	}

	messages := make([]*entity.ContactMessage, len(docs))
	for i := range docs {
		messages[i] = ToContactEntity(&docs[i])
	}
	return messages, total, nil
}

func (r *contactRepository) SetHandled(ctx context.Context, id string, handled bool) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}
	res, err := r.collection.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "handled", Value: handled}}}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
