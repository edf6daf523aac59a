package domain

import "time"

// RecipePart is one ingredient layer of a drink: how many parts of which
// liquid, and the color used to render it in the menu graphic.
type RecipePart struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Parts int    `json:"parts"`
}

// Drink is the catalog aggregate for a menu item.
type Drink struct {
	ID        int64
	Title     string
	Recipe    []RecipePart
	CreatedAt time.Time
	UpdatedAt time.Time
}
