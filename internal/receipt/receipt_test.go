package receipt

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/yungbote/restaurant-admin/internal/domain"
)

func sampleOrder() domain.Order {
	return domain.Order{
		ID:          "42",
		OrderNumber: "A-1042",
		Items: []domain.OrderItem{
			{Name: "Margherita", Category: "Pizza", UnitPrice: 500, Quantity: 2},
			{Name: "Cola", Category: "Drinks", UnitPrice: 100, Quantity: 3},
		},
	}
}

func TestBuildGroupsByCategoryAndTotals(t *testing.T) {
	v := Build(sampleOrder(), nil, Branding{})

	if len(v.Sections) != 2 {
		t.Fatalf("sections: got=%d want=2", len(v.Sections))
	}
	if v.Sections[0].Category != "Pizza" || v.Sections[1].Category != "Drinks" {
		t.Fatalf("section order: got=%s,%s", v.Sections[0].Category, v.Sections[1].Category)
	}
	if got := v.Sections[0].Lines[0].Total; got != 1000 {
		t.Fatalf("pizza line total: got=%v want=1000", got)
	}
	if got := v.Sections[1].Lines[0].Total; got != 300 {
		t.Fatalf("drinks line total: got=%v want=300", got)
	}
	if v.ItemsTotal != 1300 {
		t.Fatalf("items total: got=%v want=1300", v.ItemsTotal)
	}
	if v.GrandTotal != 1300 {
		t.Fatalf("grand total: got=%v want=1300", v.GrandTotal)
	}
}

func TestBuildDeliveryAndFallbackCategory(t *testing.T) {
	o := domain.Order{
		ID:             "7",
		DeliveryCharge: 150,
		Items: []domain.OrderItem{
			{Name: "Bread", UnitPrice: 50, Quantity: 1},
			{MenuItem: &domain.MenuItem{ID: "3", Name: "Soup", Category: &domain.Category{Name: "Starters"}}, UnitPrice: 200, Quantity: 1},
			{Name: "Butter", UnitPrice: 20, Quantity: 2},
		},
	}
	v := Build(o, &domain.Restaurant{ID: "1", Name: "Trattoria", Currency: "$"}, Branding{Footer: "Grazie"})

	if len(v.Sections) != 2 {
		t.Fatalf("sections: got=%d want=2", len(v.Sections))
	}
	if v.Sections[0].Category != FallbackCategory {
		t.Fatalf("first section: got=%q want=%q", v.Sections[0].Category, FallbackCategory)
	}
	if n := len(v.Sections[0].Lines); n != 2 || v.Sections[0].Lines[1].Name != "Butter" {
		t.Fatalf("fallback section lines: got=%+v", v.Sections[0].Lines)
	}
	if v.Sections[1].Lines[0].Name != "Soup" {
		t.Fatalf("menu item name: got=%q", v.Sections[1].Lines[0].Name)
	}
	if v.ItemsTotal != 290 || v.GrandTotal != 440 {
		t.Fatalf("totals: items=%v grand=%v", v.ItemsTotal, v.GrandTotal)
	}
	if v.Currency != "$" || v.Restaurant.Name != "Trattoria" || v.Footer != "Grazie" {
		t.Fatalf("header/footer: got=%+v", v)
	}
}

func TestBuildEmptyOrder(t *testing.T) {
	v := Build(domain.Order{ID: "1"}, nil, Branding{})
	if v.Sections == nil || len(v.Sections) != 0 {
		t.Fatalf("sections: got=%v want empty non-nil", v.Sections)
	}
	if v.GrandTotal != 0 {
		t.Fatalf("grand total: got=%v", v.GrandTotal)
	}
}

func TestMoneyFormatting(t *testing.T) {
	v := View{Currency: "$"}
	if got := v.Money(1300); got != "$1,300.00" {
		t.Fatalf("Money: got=%q", got)
	}
	if got := v.Qty(3); got != "3" {
		t.Fatalf("Qty whole: got=%q", got)
	}
	if got := v.Qty(1.5); got != "1.50" {
		t.Fatalf("Qty fraction: got=%q", got)
	}
}

func TestRenderHTML(t *testing.T) {
	v := Build(sampleOrder(), &domain.Restaurant{ID: "1", Name: "Pizza <Place>"}, Branding{CurrencySymbol: "$"})
	var buf bytes.Buffer
	if err := RenderHTML(&buf, v); err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"window.print()", "Pizza &lt;Place&gt;", "Drinks", "$1,300.00", "A-1042"} {
		if !strings.Contains(out, want) {
			t.Fatalf("html missing %q", want)
		}
	}
}

func TestRenderPNG(t *testing.T) {
	v := Build(sampleOrder(), &domain.Restaurant{ID: "1", Name: "Trattoria"}, Branding{Footer: "Thanks"})
	var buf bytes.Buffer
	if err := RenderPNG(&buf, v); err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if w := img.Bounds().Dx(); w != PNGWidth {
		t.Fatalf("width: got=%d want=%d", w, PNGWidth)
	}
	if h := img.Bounds().Dy(); h <= 2*pngMargin {
		t.Fatalf("height: got=%d", h)
	}
}

func TestClip(t *testing.T) {
	if got := clip("abcdef", 4); got != "a..." {
		t.Fatalf("clip: got=%q", got)
	}
	if got := clip("abc", 10); got != "abc" {
		t.Fatalf("clip short: got=%q", got)
	}
}
