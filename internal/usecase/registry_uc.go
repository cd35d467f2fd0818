package usecase

import (
	"context"

	"telegram-appointment-monitor/internal/domain/model"
	"telegram-appointment-monitor/internal/domain/ports/repository"
	"telegram-appointment-monitor/internal/infra/logging"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ PatternRegistryUseCase = (*registryUC)(nil)

// PatternRegistryUseCase exposes the pattern set to the command flow
// and the ops API. Inputs are raw operator text; validation and
// canonicalization happen here, storage below.
type PatternRegistryUseCase interface {
	Add(ctx context.Context, raw string) (model.Pattern, error)
	Remove(ctx context.Context, raw string) (model.Pattern, error)
	List(ctx context.Context) ([]model.Pattern, error)
	Count(ctx context.Context) (int, error)
}

type registryUC struct {
	store repository.PatternRepository
	log   *zerolog.Logger
}

func NewPatternRegistryUseCase(store repository.PatternRepository, logger *zerolog.Logger) *registryUC {
	return &registryUC{store: store, log: logger}
}

func (u *registryUC) Add(ctx context.Context, raw string) (model.Pattern, error) {
	defer logging.TraceDuration(u.log, "RegistryUC.Add")()

	p, err := model.NewPattern(raw)
	if err != nil {
		return model.Pattern{}, err
	}
	if err := u.store.Add(ctx, p); err != nil {
		return p, err
	}
	u.log.Info().Str("pattern", p.Raw).Msg("pattern added")
	return p, nil
}

func (u *registryUC) Remove(ctx context.Context, raw string) (model.Pattern, error) {
	defer logging.TraceDuration(u.log, "RegistryUC.Remove")()

	p, err := model.NewPattern(raw)
	if err != nil {
		return model.Pattern{}, err
	}
	if err := u.store.Remove(ctx, p); err != nil {
		return p, err
	}
	u.log.Info().Str("pattern", p.Raw).Msg("pattern removed")
	return p, nil
}

func (u *registryUC) List(ctx context.Context) ([]model.Pattern, error) {
	defer logging.TraceDuration(u.log, "RegistryUC.List")()
	return u.store.List(ctx)
}

func (u *registryUC) Count(ctx context.Context) (int, error) {
	defer logging.TraceDuration(u.log, "RegistryUC.Count")()
	return u.store.Count(ctx)
}
