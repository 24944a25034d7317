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
	"github.com/influconnect/marketplace-api/internal/core/filter"
)

const collectionProjects = "projects"

type ProjectRepository struct {
	col *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{col: db.Collection(collectionProjects)}
}

type projectDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	ClientID    primitive.ObjectID `bson:"client_id"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	BudgetMin   float64            `bson:"budget_min"`
	BudgetMax   float64            `bson:"budget_max"`
	Niches      []string           `bson:"niches"`
	Platforms   []string           `bson:"platforms"`
	Status      string             `bson:"status"`
	Slug        string             `bson:"slug"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d projectDoc) toDomain() *domain.Project {
	return &domain.Project{
		ID:          d.ID.Hex(),
		ClientID:    d.ClientID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		BudgetMin:   d.BudgetMin,
		BudgetMax:   d.BudgetMax,
		Niches:      d.Niches,
		Platforms:   d.Platforms,
		Status:      domain.ProjectStatus(d.Status),
		Slug:        d.Slug,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// Create inserts a new project. The unique slug index guards the
// deterministic-suffix strategy against the rare same-millisecond collision.
func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	clientOID, err := primitive.ObjectIDFromHex(p.ClientID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid client id", domain.ErrValidation)
	}

	doc := projectDoc{
		ClientID:    clientOID,
		Title:       p.Title,
		Description: p.Description,
		BudgetMin:   p.BudgetMin,
		BudgetMax:   p.BudgetMax,
		Niches:      p.Niches,
		Platforms:   p.Platforms,
		Status:      string(p.Status),
		Slug:        p.Slug,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("insert project: %w", err)
	}

	created := *p
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *ProjectRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Project, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return []*domain.Project{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("find projects: %w", err)
	}
	return decodeProjects(ctx, cur)
}

func (r *ProjectRepository) FindBySlug(ctx context.Context, slug string) (*domain.Project, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *ProjectRepository) findOne(ctx context.Context, f bson.M) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d projectDoc
	if err := r.col.FindOne(ctx, f).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return d.toDomain(), nil
}

// List returns the page matching q plus the total count over the whole
// filter.
func (r *ProjectRepository) List(ctx context.Context, q *filter.Query) ([]*domain.Project, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	f := specToBson(q.Spec)

	total, err := r.col.CountDocuments(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("count projects: %w", err)
	}

	opts := options.Find().
		SetSort(sortToBson(q.Sort)).
		SetSkip(int64(q.Page.Skip)).
		SetLimit(int64(q.Page.Limit))

	cur, err := r.col.Find(ctx, f, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list projects: %w", err)
	}
	projects, err := decodeProjects(ctx, cur)
	if err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

func decodeProjects(ctx context.Context, cur *mongo.Cursor) ([]*domain.Project, error) {
	defer cur.Close(ctx)
	out := []*domain.Project{}
	for cur.Next(ctx) {
		var d projectDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode project: %w", err)
		}
		out = append(out, d.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return out, nil
}

// EnsureIndexes creates the unique slug index plus the lookup indexes the
// list endpoints rely on.
func (r *ProjectRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_slug"),
		},
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
