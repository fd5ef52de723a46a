package services

import (
	"context"
	"net/url"
	"strings"

	"github.com/yungbote/restaurant-admin/internal/aggregate"
	"github.com/yungbote/restaurant-admin/internal/domain"
	"github.com/yungbote/restaurant-admin/internal/platform/logger"
)

// RecipeSummary is the menu item a group of recipe rows belongs to.
type RecipeSummary struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category,omitempty"`
	Price    float64 `json:"price"`
}

// RecipeLine is one ingredient of a menu item's recipe.
type RecipeLine struct {
	RecipeID     string  `json:"recipe_id"`
	IngredientID string  `json:"ingredient_id,omitempty"`
	Ingredient   string  `json:"ingredient"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit,omitempty"`
	Notes        string  `json:"notes,omitempty"`
}

type RecipeGroup = aggregate.Group[RecipeSummary, RecipeLine]

type RecipeFilter struct {
	BranchID   string
	MenuItemID string
}

func (f RecipeFilter) query() url.Values {
	q := url.Values{}
	if v := strings.TrimSpace(f.BranchID); v != "" {
		q.Set("branch_id", v)
	}
	if v := strings.TrimSpace(f.MenuItemID); v != "" {
		q.Set("menu_item_id", v)
	}
	return q
}

type GroupedRecipes struct {
	Groups []RecipeGroup `json:"groups"`
	Stale  bool          `json:"stale"`
}

type RecipeService struct {
	log     *logger.Logger
	recipes *Resource[domain.Recipe]
}

func NewRecipeService(log *logger.Logger, recipes *Resource[domain.Recipe]) *RecipeService {
	return &RecipeService{log: log.With("service", "RecipeService"), recipes: recipes}
}

// Grouped lists recipe rows and groups them under their menu item. A failed
// refresh groups the last known rows and returns the error alongside.
func (s *RecipeService) Grouped(ctx context.Context, f RecipeFilter) (GroupedRecipes, error) {
	res, err := s.recipes.List(ctx, f.query())
	return GroupedRecipes{Groups: GroupRecipes(res.Items), Stale: res.Stale}, err
}

// GroupRecipes groups flat recipe rows by menu item. Rows without one land
// under aggregate.Unassigned.
func GroupRecipes(rows []domain.Recipe) []RecipeGroup {
	return aggregate.By(rows, aggregate.Accessors[domain.Recipe, RecipeSummary, RecipeLine]{
		Key: domain.Recipe.ParentID,
		Summary: func(r domain.Recipe) RecipeSummary {
			sum := RecipeSummary{ID: r.ParentID()}
			if r.MenuItem != nil {
				sum.Name = r.MenuItem.Name
				sum.Category = r.MenuItem.CategoryName()
				sum.Price = r.MenuItem.Price
			}
			return sum
		},
		Child: func(r domain.Recipe) RecipeLine {
			return RecipeLine{
				RecipeID:     r.ID.String(),
				IngredientID: r.Ingredient.ID.String(),
				Ingredient:   r.Ingredient.Name,
				Quantity:     r.Quantity,
				Unit:         r.EffectiveUnit(),
				Notes:        r.Notes,
			}
		},
	})
}
