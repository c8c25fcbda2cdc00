package repository

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"

	"github.com/wizardofoss/woss/internal/domain"
	"github.com/wizardofoss/woss/internal/usecase"
)

var tracer = otel.Tracer("repository")

// PreferenceRepository keeps each user's last-selected country in
// redis, keyed by the raw user id. The value is stored and returned as
// an opaque string; whether it still matches a current office option is
// the caller's concern.
type PreferenceRepository struct {
	rdb *redis.Client
}

func NewPreferenceRepository(rdb *redis.Client) *PreferenceRepository {
	return &PreferenceRepository{rdb: rdb}
}

func (r *PreferenceRepository) GetDefaultCountry(ctx context.Context, userID string) (string, error) {
	ctx, span := tracer.Start(ctx, "Preference.Repository.GetDefaultCountry")
	defer span.End()

	value, err := r.rdb.Get(ctx, userID).Result()
	if err == redis.Nil {
		return "", domain.NotFoundError{Resource: "default country"}
	}
	if err != nil {
		span.RecordError(err)
		return "", errors.Wrap(err, "failed to read default country")
	}

	return value, nil
}

func (r *PreferenceRepository) SetDefaultCountry(ctx context.Context, userID, country string) error {
	ctx, span := tracer.Start(ctx, "Preference.Repository.SetDefaultCountry")
	defer span.End()

	err := r.rdb.Set(ctx, userID, country, 0).Err()
	if err != nil {
		span.RecordError(err)
		return errors.Wrap(err, "failed to store default country")
	}

	return nil
}

var _ usecase.PreferenceRepository = (*PreferenceRepository)(nil)
