package repo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"

	"github.com/tazhibayda/markpad/internal/domain"
)

// literal keeps user supplied strings from being read as field paths
// ("$foo") inside the update pipeline.
func literal(s *string) any {
	if s == nil {
		return nil
	}
	return bson.M{"$literal": *s}
}

// UpsertProfile creates the profile for id or refreshes it, in one atomic
// update. Both timestamps come from the database clock ($$NOW); created_at
// keeps its stored value when the document already exists.
func (s *Store) UpsertProfile(ctx context.Context, id domain.Identity) (created bool, err error) {
	sp, ctx := tracer.StartSpanFromContext(ctx, "mongo.users.upsert")
	defer func() { sp.Finish(tracer.WithError(err)) }()

	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "email", Value: literal(id.Email)},
			{Key: "display_name", Value: literal(id.DisplayName)},
			{Key: "photo_url", Value: literal(id.PhotoURL)},
			{Key: "created_at", Value: bson.M{"$ifNull": bson.A{"$created_at", "$$NOW"}}},
			{Key: "last_login", Value: "$$NOW"},
		}}},
	}
	res, err := s.colUsers.UpdateOne(ctx,
		bson.M{"_id": id.ID},
		update,
		options.Update().SetUpsert(true),
	)
	if err != nil {
		if IsDup(err) {
			return retryAfterDup(func() error {
				_, err := s.colUsers.UpdateOne(ctx, bson.M{"_id": id.ID}, update)
				return err
			})
		}
		return false, fmt.Errorf("upsert profile: %w", err)
	}
	return res.UpsertedCount > 0, nil
}

// retryAfterDup finishes the losing side of two first sign-ins racing on
// the same _id: the profile now exists, so a plain update is enough.
func retryAfterDup(update func() error) (created bool, err error) {
	if err := update(); err != nil {
		return false, fmt.Errorf("upsert profile: %w", err)
	}
	return false, nil
}

func (s *Store) FindProfileByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	sp, ctx := tracer.StartSpanFromContext(ctx, "mongo.users.find_by_id")
	defer sp.Finish()

	var p domain.UserProfile
	err := s.colUsers.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		sp.SetTag("error", err)
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return &p, nil
}

// ListProfiles returns every stored profile in storage order.
func (s *Store) ListProfiles(ctx context.Context) ([]domain.UserProfile, error) {
	sp, ctx := tracer.StartSpanFromContext(ctx, "mongo.users.list")
	defer sp.Finish()

	cur, err := s.colUsers.Find(ctx, bson.M{})
	if err != nil {
		sp.SetTag("error", err)
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer cur.Close(ctx)

	out := []domain.UserProfile{}
	for cur.Next(ctx) {
		var p domain.UserProfile
		if err := cur.Decode(&p); err != nil {
			return nil, fmt.Errorf("decode profile: %w", err)
		}
		out = append(out, p)
	}
	return out, cur.Err()
}

// FindProfileByEmail matches email exactly. Emails are not unique; with
// several matches the earliest created profile wins.
func (s *Store) FindProfileByEmail(ctx context.Context, email string) (*domain.UserProfile, error) {
	sp, ctx := tracer.StartSpanFromContext(ctx, "mongo.users.find_by_email")
	defer sp.Finish()

	var p domain.UserProfile
	err := s.colUsers.FindOne(ctx,
		bson.M{"email": email},
		options.FindOne().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}),
	).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		sp.SetTag("error", err)
		return nil, fmt.Errorf("find profile by email: %w", err)
	}
	return &p, nil
}
