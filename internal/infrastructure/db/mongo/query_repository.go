package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/influconnect/marketplace-api/internal/core/domain"
)

const collectionQueries = "queries"

type QueryRepository struct {
	col *mongo.Collection
}

func NewQueryRepository(db *mongo.Database) *QueryRepository {
	return &QueryRepository{col: db.Collection(collectionQueries)}
}

type queryDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Subject   string             `bson:"subject"`
	Message   string             `bson:"message"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d queryDoc) toDomain() *domain.ContactQuery {
	return &domain.ContactQuery{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Subject:   d.Subject,
		Message:   d.Message,
		Status:    domain.QueryStatus(d.Status),
		CreatedAt: d.CreatedAt,
	}
}

func (r *QueryRepository) Create(ctx context.Context, q *domain.ContactQuery) (*domain.ContactQuery, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := queryDoc{
		Name:      q.Name,
		Email:     q.Email,
		Subject:   q.Subject,
		Message:   q.Message,
		Status:    string(q.Status),
		CreatedAt: q.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert query: %w", err)
	}

	created := *q
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *QueryRepository) List(ctx context.Context) ([]*domain.ContactQuery, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list queries: %w", err)
	}
	defer cur.Close(ctx)

	out := []*domain.ContactQuery{}
	for cur.Next(ctx) {
		var d queryDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode query: %w", err)
		}
		out = append(out, d.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate queries: %w", err)
	}
	return out, nil
}
