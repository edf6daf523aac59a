package dto

import "github.com/spec-kit/drinks-service/internal/domain"

// CreateDrinkRequest payload.
type CreateDrinkRequest struct {
	Title  string              `json:"title"`
	Recipe []domain.RecipePart `json:"recipe"`
}

// UpdateDrinkRequest payload; nil fields are left unchanged.
type UpdateDrinkRequest struct {
	Title  *string              `json:"title"`
	Recipe *[]domain.RecipePart `json:"recipe"`
}

// RecipePartShort hides ingredient names on the public menu.
type RecipePartShort struct {
	Color string `json:"color"`
	Parts int    `json:"parts"`
}

// DrinkShort is the public representation: the rendering data only.
type DrinkShort struct {
	ID     int64             `json:"id"`
	Title  string            `json:"title"`
	Recipe []RecipePartShort `json:"recipe"`
}

// DrinkLong is the full representation, including ingredient names.
type DrinkLong struct {
	ID     int64               `json:"id"`
	Title  string              `json:"title"`
	Recipe []domain.RecipePart `json:"recipe"`
}

// ShortDrink maps a domain drink to its public form.
func ShortDrink(d *domain.Drink) DrinkShort {
	recipe := make([]RecipePartShort, 0, len(d.Recipe))
	for _, part := range d.Recipe {
		recipe = append(recipe, RecipePartShort{Color: part.Color, Parts: part.Parts})
	}
	return DrinkShort{ID: d.ID, Title: d.Title, Recipe: recipe}
}

// LongDrink maps a domain drink to its detailed form.
func LongDrink(d *domain.Drink) DrinkLong {
	recipe := make([]domain.RecipePart, 0, len(d.Recipe))
	recipe = append(recipe, d.Recipe...)
	return DrinkLong{ID: d.ID, Title: d.Title, Recipe: recipe}
}
