// Package receipt builds the printable receipt of an order and renders it as
// an HTML print document or a thermal-printer PNG.
package receipt

import (
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/yungbote/restaurant-admin/internal/aggregate"
	"github.com/yungbote/restaurant-admin/internal/domain"
)

// FallbackCategory titles line items whose category is unset.
const FallbackCategory = "Other Items"

// Branding is the static part of a receipt. Zero fields fall back to the
// restaurant profile.
type Branding struct {
	CurrencySymbol string `yaml:"currency_symbol" json:"currency_symbol,omitempty"`
	Header         string `yaml:"header" json:"header,omitempty"`
	Footer         string `yaml:"footer" json:"footer,omitempty"`
	Locale         string `yaml:"locale" json:"locale,omitempty"`
}

// Merge returns b with empty fields taken from other.
func (b Branding) Merge(other Branding) Branding {
	if b.CurrencySymbol == "" {
		b.CurrencySymbol = other.CurrencySymbol
	}
	if b.Header == "" {
		b.Header = other.Header
	}
	if b.Footer == "" {
		b.Footer = other.Footer
	}
	if b.Locale == "" {
		b.Locale = other.Locale
	}
	return b
}

type Header struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	LogoURL string `json:"logo_url,omitempty"`
	Tagline string `json:"tagline,omitempty"`
}

type Line struct {
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  float64 `json:"quantity"`
	Total     float64 `json:"line_total"`
	Notes     string  `json:"notes,omitempty"`
}

type Section struct {
	Category string  `json:"category"`
	Lines    []Line  `json:"lines"`
	Subtotal float64 `json:"subtotal"`
}

type View struct {
	Restaurant     Header     `json:"restaurant"`
	OrderID        string     `json:"order_id"`
	OrderNumber    string     `json:"order_number,omitempty"`
	CustomerName   string     `json:"customer_name,omitempty"`
	CustomerPhone  string     `json:"customer_phone,omitempty"`
	Address        string     `json:"address,omitempty"`
	PaymentMethod  string     `json:"payment_method,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
	Sections       []Section  `json:"sections"`
	ItemsTotal     float64    `json:"items_total"`
	DeliveryCharge float64    `json:"delivery_charge"`
	GrandTotal     float64    `json:"grand_total"`
	Footer         string     `json:"footer,omitempty"`
	Currency       string     `json:"currency,omitempty"`
	Locale         string     `json:"locale,omitempty"`
}

// Build groups the order's line items by category in first-seen order. The
// items total ignores the delivery charge; the grand total adds it.
func Build(order domain.Order, restaurant *domain.Restaurant, b Branding) View {
	v := View{
		OrderID:        order.ID.String(),
		OrderNumber:    order.OrderNumber,
		CustomerName:   order.CustomerName,
		CustomerPhone:  order.CustomerPhone,
		Address:        order.Address,
		PaymentMethod:  order.PaymentMethod,
		Notes:          order.Notes,
		CreatedAt:      order.CreatedAt,
		DeliveryCharge: order.DeliveryCharge,
		Footer:         b.Footer,
		Currency:       b.CurrencySymbol,
		Locale:         b.Locale,
	}
	if restaurant != nil {
		v.Restaurant = Header{
			Name:    restaurant.Name,
			Address: restaurant.Address,
			Phone:   restaurant.Phone,
			LogoURL: restaurant.LogoURL,
		}
		if v.Currency == "" {
			v.Currency = restaurant.Currency
		}
	}
	v.Restaurant.Tagline = b.Header

	groups := aggregate.By(order.Items, aggregate.Accessors[domain.OrderItem, string, Line]{
		Key:      domain.OrderItem.CategoryName,
		Fallback: FallbackCategory,
		Child: func(it domain.OrderItem) Line {
			return Line{
				Name:      it.DisplayName(),
				UnitPrice: it.UnitPrice,
				Quantity:  it.Quantity,
				Total:     it.LineTotal(),
				Notes:     it.Notes,
			}
		},
	})

	v.Sections = make([]Section, 0, len(groups))
	for _, g := range groups {
		sec := Section{Category: g.Key, Lines: g.Children}
		for _, l := range g.Children {
			sec.Subtotal += l.Total
		}
		v.ItemsTotal += sec.Subtotal
		v.Sections = append(v.Sections, sec)
	}
	v.GrandTotal = v.ItemsTotal + v.DeliveryCharge
	return v
}

// Money formats an amount with grouping separators and two decimals, prefixed
// by the currency symbol.
func (v View) Money(amount float64) string {
	return v.Currency + printer(v.Locale).Sprintf("%.2f", amount)
}

// Qty drops the fraction for whole quantities.
func (v View) Qty(q float64) string {
	if q == float64(int64(q)) {
		return printer(v.Locale).Sprintf("%d", int64(q))
	}
	return printer(v.Locale).Sprintf("%.2f", q)
}

func printer(locale string) *message.Printer {
	tag := language.English
	if l := strings.TrimSpace(locale); l != "" {
		if parsed, err := language.Parse(l); err == nil {
			tag = parsed
		}
	}
	return message.NewPrinter(tag)
}
