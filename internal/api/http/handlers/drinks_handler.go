package handlers

import (
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/drinks-service/internal/api/dto"
	"github.com/spec-kit/drinks-service/internal/auth"
	"github.com/spec-kit/drinks-service/internal/cache"
	"github.com/spec-kit/drinks-service/internal/service"
	apperrors "github.com/spec-kit/drinks-service/pkg/util"
)

// DrinksHandler serves the drinks catalog endpoints.
type DrinksHandler struct {
	service *service.DrinkService
	cache   cache.MenuCache
}

// NewDrinksHandler constructs handler.
func NewDrinksHandler(drinkService *service.DrinkService, menuCache cache.MenuCache) *DrinksHandler {
	return &DrinksHandler{service: drinkService, cache: menuCache}
}

// List GET /drinks. Public; short representations only.
func (h *DrinksHandler) List(c *fiber.Ctx) error {
	if payload, ok := h.cache.GetShort(c.UserContext()); ok {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(payload)
	}

	drinks, err := h.service.ListDrinks(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.DrinkShort, 0, len(drinks))
	for i := range drinks {
		items = append(items, dto.ShortDrink(&drinks[i]))
	}

	body, err := json.Marshal(fiber.Map{"success": true, "drinks": items})
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	h.cache.SetShort(c.UserContext(), body)
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}

// ListDetail GET /drinks-detail. Requires get:drinks-detail.
func (h *DrinksHandler) ListDetail(c *fiber.Ctx) error {
	if payload, ok := h.cache.GetLong(c.UserContext()); ok {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(payload)
	}

	drinks, err := h.service.ListDrinks(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.DrinkLong, 0, len(drinks))
	for i := range drinks {
		items = append(items, dto.LongDrink(&drinks[i]))
	}

	body, err := json.Marshal(fiber.Map{"success": true, "drinks": items})
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	h.cache.SetLong(c.UserContext(), body)
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}

// Create POST /drinks. Requires post:drinks.
func (h *DrinksHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateDrinkRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}

	drink, err := h.service.CreateDrink(c.UserContext(), actorFromClaims(c), service.DrinkCreateInput{
		Title:  req.Title,
		Recipe: req.Recipe,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "drinks": []dto.DrinkLong{dto.LongDrink(drink)}})
}

// Update PATCH /drinks/:id. Requires patch:drinks.
func (h *DrinksHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateDrinkRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}

	drink, err := h.service.UpdateDrink(c.UserContext(), actorFromClaims(c), id, service.DrinkUpdateInput{
		Title:  req.Title,
		Recipe: req.Recipe,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "drinks": []dto.DrinkLong{dto.LongDrink(drink)}})
}

// Delete DELETE /drinks/:id. Requires delete:drinks.
func (h *DrinksHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	deleted, err := h.service.DeleteDrink(c.UserContext(), actorFromClaims(c), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "delete": deleted})
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewNotFound("drink")
	}
	return id, nil
}

func actorFromClaims(c *fiber.Ctx) string {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return ""
	}
	return claims.Subject
}
