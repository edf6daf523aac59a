package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/spec-kit/drinks-service/internal/domain"
	"github.com/spec-kit/drinks-service/internal/events"
	"github.com/spec-kit/drinks-service/internal/repository"
	apperrors "github.com/spec-kit/drinks-service/pkg/util"
)

const pgUniqueViolation = "23505"

// DrinkCreateInput carries validated-enough data for a new drink.
type DrinkCreateInput struct {
	Title  string
	Recipe []domain.RecipePart
}

// DrinkUpdateInput carries a partial update; nil fields are untouched.
type DrinkUpdateInput struct {
	Title  *string
	Recipe *[]domain.RecipePart
}

// DrinkService owns catalog business logic.
type DrinkService struct {
	repo       repository.DrinkRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewDrinkService constructs the service.
func NewDrinkService(repo repository.DrinkRepository, dispatcher events.Dispatcher, logger *zap.Logger) *DrinkService {
	return &DrinkService{repo: repo, dispatcher: dispatcher, logger: logger}
}

// ListDrinks returns the full catalog ordered by id.
func (s *DrinkService) ListDrinks(ctx context.Context) ([]domain.Drink, error) {
	drinks, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return drinks, nil
}

// CreateDrink validates and stores a new drink, then announces it.
func (s *DrinkService) CreateDrink(ctx context.Context, actor string, input DrinkCreateInput) (*domain.Drink, error) {
	if err := validateRecipe(input.Title, input.Recipe); err != nil {
		return nil, err
	}

	drink := &domain.Drink{Title: strings.TrimSpace(input.Title), Recipe: input.Recipe}
	if err := s.repo.Create(ctx, drink); err != nil {
		return nil, mapRepoError(err)
	}

	s.publish(ctx, events.EventDrinkCreated, drink, actor)
	return drink, nil
}

// UpdateDrink applies a partial update to an existing drink.
func (s *DrinkService) UpdateDrink(ctx context.Context, actor string, id int64, input DrinkUpdateInput) (*domain.Drink, error) {
	drink, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if input.Title != nil {
		drink.Title = strings.TrimSpace(*input.Title)
	}
	if input.Recipe != nil {
		drink.Recipe = *input.Recipe
	}
	if err := validateRecipe(drink.Title, drink.Recipe); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, drink); err != nil {
		return nil, mapRepoError(err)
	}

	s.publish(ctx, events.EventDrinkUpdated, drink, actor)
	return drink, nil
}

// DeleteDrink removes a drink and reports the deleted id.
func (s *DrinkService) DeleteDrink(ctx context.Context, actor string, id int64) (int64, error) {
	drink, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return 0, mapRepoError(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return 0, mapRepoError(err)
	}

	s.publish(ctx, events.EventDrinkDeleted, drink, actor)
	return drink.ID, nil
}

func (s *DrinkService) publish(ctx context.Context, eventType events.EventType, drink *domain.Drink, actor string) {
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		DrinkID:   drink.ID,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Payload:   events.DrinkChangedPayload{Title: drink.Title},
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handlers failed",
			zap.String("event", string(eventType)),
			zap.Int64("drink_id", drink.ID),
			zap.Error(err))
	}
}

func validateRecipe(title string, recipe []domain.RecipePart) error {
	if strings.TrimSpace(title) == "" {
		return apperrors.NewUnprocessable("title is required", nil)
	}
	if len(recipe) == 0 {
		return apperrors.NewUnprocessable("recipe must contain at least one part", nil)
	}
	for i, part := range recipe {
		if part.Parts <= 0 || strings.TrimSpace(part.Color) == "" {
			return apperrors.NewUnprocessable("recipe part is invalid", map[string]any{"index": i})
		}
	}
	return nil
}

func mapRepoError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("drink")
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return apperrors.NewConflict("a drink with this title already exists", nil)
	}
	return apperrors.NewInternalError(err)
}
