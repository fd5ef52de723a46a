package domain

import (
	"strings"
	"time"
)

type OrderItem struct {
	ID         ID        `json:"id,omitempty"`
	MenuItemID ID        `json:"menu_item_id,omitempty"`
	MenuItem   *MenuItem `json:"menu_item,omitempty"`
	Name       string    `json:"name,omitempty"`
	Category   string    `json:"category,omitempty"`
	UnitPrice  float64   `json:"price"`
	Quantity   float64   `json:"quantity"`
	Notes      string    `json:"notes,omitempty"`
}

func (it OrderItem) Validate() error {
	if it.Quantity < 0 {
		return invalid("order item", "quantity must not be negative")
	}
	if it.UnitPrice < 0 {
		return invalid("order item", "price must not be negative")
	}
	return nil
}

// DisplayName prefers the line's own name over the menu item's.
func (it OrderItem) DisplayName() string {
	if n := strings.TrimSpace(it.Name); n != "" {
		return n
	}
	if it.MenuItem != nil {
		return strings.TrimSpace(it.MenuItem.Name)
	}
	return ""
}

// CategoryName prefers the line's category over the menu item's; "" when
// neither is set.
func (it OrderItem) CategoryName() string {
	if c := strings.TrimSpace(it.Category); c != "" {
		return c
	}
	if it.MenuItem != nil {
		return it.MenuItem.CategoryName()
	}
	return ""
}

// LineTotal is unit price times quantity.
func (it OrderItem) LineTotal() float64 {
	return it.UnitPrice * it.Quantity
}

type Order struct {
	ID             ID          `json:"id"`
	OrderNumber    string      `json:"order_number,omitempty"`
	BranchID       ID          `json:"branch_id,omitempty"`
	CustomerName   string      `json:"customer_name,omitempty"`
	CustomerPhone  string      `json:"customer_phone,omitempty"`
	Address        string      `json:"address,omitempty"`
	Items          []OrderItem `json:"items"`
	DeliveryCharge float64     `json:"delivery_charge"`
	PaymentMethod  string      `json:"payment_method,omitempty"`
	Status         string      `json:"status,omitempty"`
	Notes          string      `json:"notes,omitempty"`
	CreatedAt      *time.Time  `json:"created_at,omitempty"`
}

func (o Order) Validate() error {
	if o.ID.IsZero() {
		return invalid("order", "id is required")
	}
	if o.DeliveryCharge < 0 {
		return invalid("order", "delivery charge must not be negative")
	}
	return ValidateAll(o.Items)
}

type Payment struct {
	ID        ID         `json:"id"`
	OrderID   ID         `json:"order_id,omitempty"`
	Amount    float64    `json:"amount"`
	Method    string     `json:"method,omitempty"`
	Status    string     `json:"status,omitempty"`
	Reference string     `json:"reference,omitempty"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
}

func (p Payment) Validate() error {
	if p.ID.IsZero() {
		return invalid("payment", "id is required")
	}
	if p.Amount < 0 {
		return invalid("payment", "amount must not be negative")
	}
	return nil
}
