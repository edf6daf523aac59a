package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/drinks-service/internal/domain"
)

// DrinkRepository encapsulates drink persistence.
type DrinkRepository interface {
	List(ctx context.Context) ([]domain.Drink, error)
	GetByID(ctx context.Context, id int64) (*domain.Drink, error)
	Create(ctx context.Context, drink *domain.Drink) error
	Update(ctx context.Context, drink *domain.Drink) error
	Delete(ctx context.Context, id int64) error
}

type drinkRepository struct {
	pool *pgxpool.Pool
}

// NewDrinkRepository instantiates repository.
func NewDrinkRepository(pool *pgxpool.Pool) DrinkRepository {
	return &drinkRepository{pool: pool}
}

func (r *drinkRepository) List(ctx context.Context) ([]domain.Drink, error) {
	const query = `
        SELECT id, title, recipe, created_at, updated_at
        FROM drinks ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drinks := make([]domain.Drink, 0)
	for rows.Next() {
		drink, err := scanDrink(rows)
		if err != nil {
			return nil, err
		}
		drinks = append(drinks, *drink)
	}
	return drinks, rows.Err()
}

func (r *drinkRepository) GetByID(ctx context.Context, id int64) (*domain.Drink, error) {
	const query = `
        SELECT id, title, recipe, created_at, updated_at
        FROM drinks WHERE id=$1`
	return scanDrink(r.pool.QueryRow(ctx, query, id))
}

func (r *drinkRepository) Create(ctx context.Context, drink *domain.Drink) error {
	const query = `
        INSERT INTO drinks (title, recipe)
        VALUES ($1, $2)
        RETURNING id, created_at, updated_at`
	recipe, err := json.Marshal(drink.Recipe)
	if err != nil {
		return fmt.Errorf("encode recipe: %w", err)
	}
	return r.pool.QueryRow(ctx, query, drink.Title, recipe).
		Scan(&drink.ID, &drink.CreatedAt, &drink.UpdatedAt)
}

func (r *drinkRepository) Update(ctx context.Context, drink *domain.Drink) error {
	const query = `
        UPDATE drinks SET title=$1, recipe=$2, updated_at=NOW()
        WHERE id=$3`
	recipe, err := json.Marshal(drink.Recipe)
	if err != nil {
		return fmt.Errorf("encode recipe: %w", err)
	}
	cmd, err := r.pool.Exec(ctx, query, drink.Title, recipe, drink.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *drinkRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM drinks WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanDrink(row pgx.Row) (*domain.Drink, error) {
	var (
		drink  domain.Drink
		recipe []byte
	)
	if err := row.Scan(&drink.ID, &drink.Title, &recipe, &drink.CreatedAt, &drink.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(recipe, &drink.Recipe); err != nil {
		return nil, fmt.Errorf("decode recipe: %w", err)
	}
	return &drink, nil
}
