package persistent

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"studio-portfolio/services/studio/internal/entity"
	"studio-portfolio/services/studio/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MediaRepository interface {
	Kind() entity.MediaKind
	EnsureIndexes(ctx context.Context) error
	Create(ctx context.Context, media *entity.Media) error
	GetByID(ctx context.Context, id string) (*entity.Media, error)
	GetVisible(ctx context.Context, id string, viewer entity.Viewer) (*entity.Media, error)
	List(ctx context.Context, filter entity.MediaFilter, viewer entity.Viewer, limit, offset int) ([]*entity.Media, int64, error)
	CategoryCounts(ctx context.Context, viewer entity.Viewer) (map[entity.Category]int64, error)
	Update(ctx context.Context, media *entity.Media) error
	Delete(ctx context.Context, id string) error
	ListByUploader(ctx context.Context, userID string) ([]*entity.Media, error)
	DeleteByUploader(ctx context.Context, userID string) (int64, error)
	CountByUploader(ctx context.Context, userID string) (int64, error)
	AddLike(ctx context.Context, id, userID string) (bool, error)
	RemoveLike(ctx context.Context, id, userID string) (bool, error)
	IncrementViews(ctx context.Context, id string) error
	AddComment(ctx context.Context, id string, comment *entity.Comment) error
	RemoveComment(ctx context.Context, id, commentID string) error
}

type mediaRepository struct {
	kind       entity.MediaKind
	collection *mongo.Collection
}

func NewMediaRepository(db *mongo.Database, kind entity.MediaKind) MediaRepository {
	return &mediaRepository{
		kind:       kind,
		collection: db.Collection(kind.Collection()),
	}
}

func (r *mediaRepository) Kind() entity.MediaKind {
	return r.kind
}

func (r *mediaRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "uploaded_by", Value: 1}}},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
		{Keys: bson.D{{Key: "is_public", Value: 1}, {Key: "is_featured", Value: 1}}},
		{Keys: bson.D{{Key: "likes", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create %s indexes: %w", r.collection.Name(), err)
	}
	return nil
}

func (r *mediaRepository) Create(ctx context.Context, media *entity.Media) error {
	doc := ToMediaDocument(media)
	doc.ID = primitive.NewObjectID()
	doc.Kind = string(r.kind)
	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return err
	}
	*media = *ToMediaEntity(doc)
	return nil
}

func (r *mediaRepository) GetByID(ctx context.Context, id string) (*entity.Media, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	return r.findOne(ctx, bson.D{{Key: "_id", Value: oid}})
}

// GetVisible returns ErrNotFound both for missing records and for records
// the viewer is not allowed to see.
func (r *mediaRepository) GetVisible(ctx context.Context, id string, viewer entity.Viewer) (*entity.Media, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	return r.findOne(ctx, andFilters(bson.D{{Key: "_id", Value: oid}}, VisibilityFilter(viewer)))
}

func (r *mediaRepository) findOne(ctx context.Context, filter bson.D) (*entity.Media, error) {
	var doc model.MediaDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, translateMongoError(err)
	}
	return ToMediaEntity(&doc), nil
}

func (r *mediaRepository) List(ctx context.Context, filter entity.MediaFilter, viewer entity.Viewer, limit, offset int) ([]*entity.Media, int64, error) {
	query := BuildListFilter(filter, viewer)

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count %s: %w", r.collection.Name(), err)
	}

	opts := options.Find().SetSort(SortFor(filter.Sort))
	if limit > 0 {
		opts.SetLimit(int64(limit)).SetSkip(int64(offset))
	}

	items, err := r.find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *mediaRepository) find(ctx context.Context, filter bson.D, opts *options.FindOptions) ([]*entity.Media, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", r.collection.Name(), err)
	}
	defer cursor.Close(ctx)

	var docs []model.MediaDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", r.collection.Name(), err)
	}

	items := make([]*entity.Media, len(docs))
	for i := range docs {
		items[i] = ToMediaEntity(&docs[i])
	}
	return items, nil
}

func (r *mediaRepository) CategoryCounts(ctx context.Context, viewer entity.Viewer) (map[entity.Category]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: VisibilityFilter(viewer)}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate categories: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Category string `bson:"_id"`
		Count    int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode category counts: %w", err)
	}

	counts := make(map[entity.Category]int64, len(entity.Categories))
	for _, c := range entity.Categories {
		counts[c] = 0
	}
	for _, row := range rows {
		counts[entity.Category(row.Category)] += row.Count
	}
	return counts, nil
}

func (r *mediaRepository) Update(ctx context.Context, media *entity.Media) error {
	oid, err := primitive.ObjectIDFromHex(media.ID)
	if err != nil {
		return ErrInvalidID
	}

	media.UpdatedAt = time.Now().UTC()
	tags := media.Tags
	if tags == nil {
		tags = []string{}
	}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "title", Value: media.Title},
		{Key: "description", Value: media.Description},
		{Key: "category", Value: string(media.Category)},
		{Key: "tags", Value: tags},
		{Key: "is_public", Value: media.IsPublic},
		{Key: "is_featured", Value: media.IsFeatured},
		{Key: "uploaded_by", Value: media.UploadedBy},
		{Key: "updated_at", Value: media.UpdatedAt},
	}}}

	res, err := r.collection.UpdateOne(ctx, bson.D{{Key: "_id", Value: oid}}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mediaRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}
	res, err := r.collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mediaRepository) ListByUploader(ctx context.Context, userID string) ([]*entity.Media, error) {
	return r.find(ctx, bson.D{{Key: "uploaded_by", Value: userID}}, options.Find())
}

func (r *mediaRepository) DeleteByUploader(ctx context.Context, userID string) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.D{{Key: "uploaded_by", Value: userID}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *mediaRepository) CountByUploader(ctx context.Context, userID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.D{{Key: "uploaded_by", Value: userID}})
}

// AddLike reports whether the like was recorded. The membership check sits in
// the filter so concurrent likes by the same user cannot double count.
func (r *mediaRepository) AddLike(ctx context.Context, id, userID string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, ErrInvalidID
	}
	filter := bson.D{
		{Key: "_id", Value: oid},
		{Key: "likes", Value: bson.D{{Key: "$ne", Value: userID}}},
	}
	update := bson.D{
		{Key: "$addToSet", Value: bson.D{{Key: "likes", Value: userID}}},
		{Key: "$inc", Value: bson.D{{Key: "likes_count", Value: 1}}},
	}
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func (r *mediaRepository) RemoveLike(ctx context.Context, id, userID string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, ErrInvalidID
	}
	filter := bson.D{
		{Key: "_id", Value: oid},
		{Key: "likes", Value: userID},
	}
	update := bson.D{
		{Key: "$pull", Value: bson.D{{Key: "likes", Value: userID}}},
		{Key: "$inc", Value: bson.D{{Key: "likes_count", Value: -1}}},
	}
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func (r *mediaRepository) IncrementViews(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}
	_, err = r.collection.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "views", Value: 1}}}},
	)
	return err
}

func (r *mediaRepository) AddComment(ctx context.Context, id string, comment *entity.Comment) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}
	doc := ToCommentDocument(comment)
	comment.ID = doc.ID.Hex()

	res, err := r.collection.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$push", Value: bson.D{{Key: "comments", Value: doc}}}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mediaRepository) RemoveComment(ctx context.Context, id, commentID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}
	cid, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return ErrInvalidID
	}

	res, err := r.collection.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}, {Key: "comments._id", Value: cid}},
		bson.D{{Key: "$pull", Value: bson.D{{Key: "comments", Value: bson.D{{Key: "_id", Value: cid}}}}}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// VisibilityFilter matches the records viewer may see. Admins get an empty
// filter.
func VisibilityFilter(viewer entity.Viewer) bson.D {
	switch {
	case viewer.IsAdmin():
		return bson.D{}
	case viewer.IsAnonymous():
		return bson.D{{Key: "is_public", Value: true}}
	default:
		return bson.D{{Key: "$or", Value: bson.A{
			bson.D{{Key: "is_public", Value: true}},
			bson.D{{Key: "uploaded_by", Value: viewer.UserID}},
		}}}
	}
}

func BuildListFilter(filter entity.MediaFilter, viewer entity.Viewer) bson.D {
	clauses := []bson.D{VisibilityFilter(viewer)}

	if filter.Category != "" {
		clauses = append(clauses, bson.D{{Key: "category", Value: string(filter.Category)}})
	}
	if filter.Tag != "" {
		clauses = append(clauses, bson.D{{Key: "tags", Value: filter.Tag}})
	}
	if filter.Featured {
		clauses = append(clauses, bson.D{{Key: "is_featured", Value: true}})
	}
	if filter.UploadedBy != "" {
		clauses = append(clauses, bson.D{{Key: "uploaded_by", Value: filter.UploadedBy}})
	}
	if filter.LikedBy != "" {
		clauses = append(clauses, bson.D{{Key: "likes", Value: filter.LikedBy}})
	}
	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		clauses = append(clauses, bson.D{{Key: "$or", Value: bson.A{
			bson.D{{Key: "title", Value: pattern}},
			bson.D{{Key: "description", Value: pattern}},
		}}})
	}

	return andFilters(clauses...)
}

func SortFor(sort entity.MediaSort) bson.D {
	switch sort {
	case entity.SortOldest:
		return bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}
	case entity.SortPopular:
		return bson.D{{Key: "views", Value: -1}, {Key: "created_at", Value: -1}}
	case entity.SortLiked:
		return bson.D{{Key: "likes_count", Value: -1}, {Key: "created_at", Value: -1}}
	default:
		return bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}
	}
}

// andFilters drops empty clauses and joins the rest with $and.
func andFilters(clauses ...bson.D) bson.D {
	nonEmpty := make(bson.A, 0, len(clauses))
	for _, c := range clauses {
		if len(c) > 0 {
			nonEmpty = append(nonEmpty, c)
		}
	}
	switch len(nonEmpty) {
	case 0:
		return bson.D{}
	case 1:
		return nonEmpty[0].(bson.D)
	default:
		return bson.D{{Key: "$and", Value: nonEmpty}}
	}
}

func translateMongoError(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
