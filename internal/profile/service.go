// Package profile keeps one stored profile per signed-in identity.
package profile

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tazhibayda/markpad/internal/domain"
	"github.com/tazhibayda/markpad/internal/helper"
	applog "github.com/tazhibayda/markpad/internal/log"
	"github.com/tazhibayda/markpad/internal/metrics"
	"github.com/tazhibayda/markpad/internal/queue"
)

// Repository is the persistence the service needs; *repo.Store implements it.
type Repository interface {
	UpsertProfile(ctx context.Context, id domain.Identity) (created bool, err error)
	FindProfileByID(ctx context.Context, id string) (*domain.UserProfile, error)
	ListProfiles(ctx context.Context) ([]domain.UserProfile, error)
	FindProfileByEmail(ctx context.Context, email string) (*domain.UserProfile, error)
}

type Service struct {
	repo   Repository
	events queue.Publisher
}

func NewService(r Repository, pub queue.Publisher) *Service {
	if pub == nil {
		pub = queue.NewNoop()
	}
	return &Service{repo: r, events: pub}
}

// Upsert records a sign-in for id. An identity without an ID is ignored.
func (s *Service) Upsert(ctx context.Context, id domain.Identity, reqID string) error {
	if id.ID == "" {
		return nil
	}
	l := applog.Ctx(ctx, zap.String("user_id", id.ID), zap.String("request_id", reqID))

	created, err := s.repo.UpsertProfile(ctx, id)
	if err != nil {
		metrics.ProfileUpserts.WithLabelValues("error").Inc()
		l.Error("profile upsert failed", zap.Error(err))
		return err
	}

	result := "updated"
	if created {
		result = "created"
	}
	metrics.ProfileUpserts.WithLabelValues(result).Inc()
	l.Info("profile upserted", zap.String("result", result))

	ev := queue.ProfileSignedIn{
		UserID:    id.ID,
		EmailHash: helper.EmailDigest(id.Email),
		Created:   created,
		At:        time.Now().UTC(),
	}
	if created {
		if err := s.events.Publish(ctx, queue.KeyProfileCreated, ev, reqID); err != nil {
			l.Warn("publish profile.created failed", zap.Error(err))
		}
	}
	if err := s.events.Publish(ctx, queue.KeyProfileSignedIn, ev, reqID); err != nil {
		l.Warn("publish profile.signed_in failed", zap.Error(err))
	}
	return nil
}

// GetByID returns domain.ErrProfileNotFound when no profile exists.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	return s.repo.FindProfileByID(ctx, id)
}

// GetAll returns every profile in no particular order.
func (s *Service) GetAll(ctx context.Context) ([]domain.UserProfile, error) {
	return s.repo.ListProfiles(ctx)
}

// GetByEmail matches email exactly, without case folding.
func (s *Service) GetByEmail(ctx context.Context, email string) (*domain.UserProfile, error) {
	return s.repo.FindProfileByEmail(ctx, email)
}
