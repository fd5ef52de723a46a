package domain

import (
	"strings"
	"time"
)

type Category struct {
	ID   ID     `json:"id,omitempty"`
	Name string `json:"name"`
}

type MenuItem struct {
	ID          ID         `json:"id"`
	BranchID    ID         `json:"branch_id,omitempty"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Price       float64    `json:"price"`
	ImageURL    string     `json:"image_url,omitempty"`
	IsAvailable bool       `json:"is_available"`
	Category    *Category  `json:"category,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

func (m MenuItem) Validate() error {
	if m.ID.IsZero() {
		return invalid("menu item", "id is required")
	}
	if strings.TrimSpace(m.Name) == "" {
		return invalid("menu item", "name is required")
	}
	if m.Price < 0 {
		return invalid("menu item", "price must not be negative")
	}
	return nil
}

// CategoryName returns the item's category name, or "".
func (m MenuItem) CategoryName() string {
	if m.Category == nil {
		return ""
	}
	return strings.TrimSpace(m.Category.Name)
}

type Ingredient struct {
	ID   ID     `json:"id,omitempty"`
	Name string `json:"name"`
	Unit string `json:"unit,omitempty"`
}

// Recipe is one flat recipe row: an ingredient line tagged with the menu item
// it belongs to. The backend repeats the menu item on every row.
type Recipe struct {
	ID         ID         `json:"id"`
	MenuItemID ID         `json:"menu_item_id,omitempty"`
	MenuItem   *MenuItem  `json:"menu_item,omitempty"`
	Ingredient Ingredient `json:"ingredient"`
	Quantity   float64    `json:"quantity"`
	Unit       string     `json:"unit,omitempty"`
	Notes      string     `json:"notes,omitempty"`
}

func (r Recipe) Validate() error {
	if r.ID.IsZero() {
		return invalid("recipe", "id is required")
	}
	if r.Quantity < 0 {
		return invalid("recipe", "quantity must not be negative")
	}
	return nil
}

// ParentID is the menu item the row belongs to: the explicit foreign key,
// falling back to the embedded menu item.
func (r Recipe) ParentID() string {
	if !r.MenuItemID.IsZero() {
		return r.MenuItemID.String()
	}
	if r.MenuItem != nil {
		return r.MenuItem.ID.String()
	}
	return ""
}

// EffectiveUnit prefers the row's unit over the ingredient's default.
func (r Recipe) EffectiveUnit() string {
	if u := strings.TrimSpace(r.Unit); u != "" {
		return u
	}
	return strings.TrimSpace(r.Ingredient.Unit)
}
