package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/influconnect/marketplace-api/internal/core/domain"
	"github.com/influconnect/marketplace-api/internal/core/filter"
	"github.com/influconnect/marketplace-api/internal/core/ports"
)

const collectionUsers = "users"

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type statsDoc struct {
	Followers      int64   `bson:"followers"`
	AvgViews       int64   `bson:"avg_views"`
	EngagementRate float64 `bson:"engagement_rate"`
}

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	Slug         string             `bson:"slug"`
	Bio          string             `bson:"bio,omitempty"`
	AvatarURL    string             `bson:"avatar_url,omitempty"`
	Platforms    []string           `bson:"platforms"`
	Niches       []string           `bson:"niches"`
	Stats        statsDoc           `bson:"stats"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func toUserDoc(u *domain.User) userDoc {
	return userDoc{
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		Slug:         u.Slug,
		Bio:          u.Bio,
		AvatarURL:    u.AvatarURL,
		Platforms:    u.Platforms,
		Niches:       u.Niches,
		Stats: statsDoc{
			Followers:      u.Stats.Followers,
			AvgViews:       u.Stats.AvgViews,
			EngagementRate: u.Stats.EngagementRate,
		},
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (d userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         d.Role,
		Slug:         d.Slug,
		Bio:          d.Bio,
		AvatarURL:    d.AvatarURL,
		Platforms:    d.Platforms,
		Niches:       d.Niches,
		Stats: domain.Stats{
			Followers:      d.Stats.Followers,
			AvgViews:       d.Stats.AvgViews,
			EngagementRate: d.Stats.EngagementRate,
		},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// Create inserts a new user. The unique indexes on email and slug are the
// authority against concurrent duplicates.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toUserDoc(u))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, duplicateUserError(err)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *u
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

// duplicateUserError distinguishes which unique index rejected the write by
// the index name embedded in the server error message.
func duplicateUserError(err error) error {
	if strings.Contains(err.Error(), "email") {
		return domain.ErrEmailTaken
	}
	return domain.ErrConflict
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return []*domain.User{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	return decodeUsers(ctx, cur)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindBySlug(ctx context.Context, slug, role string) (*domain.User, error) {
	f := bson.M{"slug": slug}
	if role != "" {
		f["role"] = role
	}
	return r.findOne(ctx, f)
}

func (r *UserRepository) findOne(ctx context.Context, f bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d userDoc
	if err := r.col.FindOne(ctx, f).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return d.toDomain(), nil
}

// UpdateProfile applies the non-nil fields of upd in a single atomic write
// and returns the updated document. A slug collision that slipped past the
// resolver's probe surfaces as domain.ErrConflict.
func (r *UserRepository) UpdateProfile(ctx context.Context, id string, upd ports.UserProfileUpdate) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Slug != nil {
		set["slug"] = *upd.Slug
	}
	if upd.Bio != nil {
		set["bio"] = *upd.Bio
	}
	if upd.AvatarURL != nil {
		set["avatar_url"] = *upd.AvatarURL
	}
	if upd.Platforms != nil {
		set["platforms"] = *upd.Platforms
	}
	if upd.Niches != nil {
		set["niches"] = *upd.Niches
	}
	if upd.Stats != nil {
		set["stats"] = statsDoc{
			Followers:      upd.Stats.Followers,
			AvgViews:       upd.Stats.AvgViews,
			EngagementRate: upd.Stats.EngagementRate,
		}
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d userDoc
	err = r.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return d.toDomain(), nil
}

// List returns the page matching q plus the total count over the whole
// filter.
func (r *UserRepository) List(ctx context.Context, q *filter.Query) ([]*domain.User, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	f := specToBson(q.Spec)

	total, err := r.col.CountDocuments(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	opts := options.Find().
		SetSort(sortToBson(q.Sort)).
		SetSkip(int64(q.Page.Skip)).
		SetLimit(int64(q.Page.Limit))

	cur, err := r.col.Find(ctx, f, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	users, err := decodeUsers(ctx, cur)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func decodeUsers(ctx context.Context, cur *mongo.Cursor) ([]*domain.User, error) {
	defer cur.Close(ctx)
	out := []*domain.User{}
	for cur.Next(ctx) {
		var d userDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		out = append(out, d.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return out, nil
}

// EnsureIndexes creates the unique email and slug indexes that back the
// registration and slug-resolution invariants.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_slug"),
		},
		{Keys: bson.D{{Key: "role", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
