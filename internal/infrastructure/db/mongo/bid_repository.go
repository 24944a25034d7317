package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/influconnect/marketplace-api/internal/core/domain"
)

const collectionBids = "bids"

type BidRepository struct {
	col *mongo.Collection
}

func NewBidRepository(db *mongo.Database) *BidRepository {
	return &BidRepository{col: db.Collection(collectionBids)}
}

type bidDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	ProjectID    primitive.ObjectID `bson:"project_id"`
	InfluencerID primitive.ObjectID `bson:"influencer_id"`
	Amount       float64            `bson:"amount"`
	Message      string             `bson:"message,omitempty"`
	Status       string             `bson:"status"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (d bidDoc) toDomain() *domain.Bid {
	return &domain.Bid{
		ID:           d.ID.Hex(),
		ProjectID:    d.ProjectID.Hex(),
		InfluencerID: d.InfluencerID.Hex(),
		Amount:       d.Amount,
		Message:      d.Message,
		Status:       domain.BidStatus(d.Status),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// Create inserts a new bid. The unique (project_id, influencer_id) index is
// what actually prevents double bidding under concurrency; its violation maps
// to domain.ErrDuplicateBid.
func (r *BidRepository) Create(ctx context.Context, b *domain.Bid) (*domain.Bid, error) {
	projectOID, err := primitive.ObjectIDFromHex(b.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid project id", domain.ErrValidation)
	}
	influencerOID, err := primitive.ObjectIDFromHex(b.InfluencerID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid influencer id", domain.ErrValidation)
	}

	doc := bidDoc{
		ProjectID:    projectOID,
		InfluencerID: influencerOID,
		Amount:       b.Amount,
		Message:      b.Message,
		Status:       string(b.Status),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateBid
		}
		return nil, fmt.Errorf("insert bid: %w", err)
	}

	created := *b
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *BidRepository) FindByID(ctx context.Context, id string) (*domain.Bid, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d bidDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find bid: %w", err)
	}
	return d.toDomain(), nil
}

// UpdateStatusIf performs the transition as a compare-and-swap: the update
// filter requires the stored status to still equal expected, so at most one
// of two concurrent terminal transitions can succeed. A miss on an existing
// bid reports domain.ErrInvalidTransition; a missing bid reports
// domain.ErrNotFound.
func (r *BidRepository) UpdateStatusIf(ctx context.Context, id string, expected, next domain.BidStatus) (*domain.Bid, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d bidDoc
	err = r.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid, "status": string(expected)},
		bson.M{"$set": bson.M{"status": string(next), "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&d)
	if err == nil {
		return d.toDomain(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("update bid status: %w", err)
	}

	// The swap missed: either the bid is gone or its status changed under us.
	if _, findErr := r.FindByID(ctx, id); findErr != nil {
		return nil, findErr
	}
	return nil, domain.ErrInvalidTransition
}

func (r *BidRepository) ListByProject(ctx context.Context, projectID string) ([]*domain.Bid, error) {
	oid, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return r.list(ctx, bson.M{"project_id": oid})
}

func (r *BidRepository) ListByInfluencer(ctx context.Context, influencerID string) ([]*domain.Bid, error) {
	oid, err := primitive.ObjectIDFromHex(influencerID)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return r.list(ctx, bson.M{"influencer_id": oid})
}

func (r *BidRepository) list(ctx context.Context, f bson.M) ([]*domain.Bid, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, f, opts)
	if err != nil {
		return nil, fmt.Errorf("list bids: %w", err)
	}
	defer cur.Close(ctx)

	out := []*domain.Bid{}
	for cur.Next(ctx) {
		var d bidDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode bid: %w", err)
		}
		out = append(out, d.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate bids: %w", err)
	}
	return out, nil
}

// EnsureIndexes creates the unique compound index that enforces one bid per
// (project, influencer) pair for the lifetime of the bid.
func (r *BidRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "project_id", Value: 1}, {Key: "influencer_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_project_influencer"),
		},
		{Keys: bson.D{{Key: "influencer_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
