package receipt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// PNG layout for an 80 mm thermal roll at 203 dpi.
const (
	PNGWidth   = 576
	pngMargin  = 16
	pngLineH   = 18
	pngMaxCols = (PNGWidth - 2*pngMargin) / 7
)

// RenderPNG draws the receipt as a single black-on-white image.
func RenderPNG(w io.Writer, v View) error {
	rows := pngRows(v)
	height := 2*pngMargin + len(rows)*pngLineH

	dc := gg.NewContext(PNGWidth, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetRGB(0, 0, 0)
	dc.SetFontFace(basicfont.Face7x13)

	y := float64(pngMargin + pngLineH)
	for _, r := range rows {
		switch {
		case r.rule:
			dc.SetLineWidth(1)
			dc.SetDash(4, 3)
			dc.DrawLine(pngMargin, y-pngLineH/2, PNGWidth-pngMargin, y-pngLineH/2)
			dc.Stroke()
			dc.SetDash()
		case r.center:
			dc.DrawStringAnchored(r.left, PNGWidth/2, y, 0.5, 0)
		default:
			dc.DrawString(r.left, pngMargin, y)
			if r.right != "" {
				dc.DrawStringAnchored(r.right, PNGWidth-pngMargin, y, 1, 0)
			}
		}
		y += pngLineH
	}
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode receipt png: %w", err)
	}
	return nil
}

type pngRow struct {
	left, right string
	center      bool
	rule        bool
}

func pngRows(v View) []pngRow {
	var rows []pngRow
	text := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			rows = append(rows, pngRow{left: clip(s, pngMaxCols)})
		}
	}
	centered := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			rows = append(rows, pngRow{left: clip(s, pngMaxCols), center: true})
		}
	}
	pair := func(l, r string) {
		rows = append(rows, pngRow{left: clip(l, pngMaxCols-len(r)-2), right: r})
	}
	rule := func() { rows = append(rows, pngRow{rule: true}) }

	centered(strings.ToUpper(v.Restaurant.Name))
	centered(v.Restaurant.Tagline)
	centered(v.Restaurant.Address)
	centered(v.Restaurant.Phone)
	rule()
	order := v.OrderNumber
	if order == "" {
		order = v.OrderID
	}
	text("Order: " + order)
	if v.CreatedAt != nil {
		text("Date: " + v.CreatedAt.Format("2006-01-02 15:04"))
	}
	if v.CustomerName != "" {
		text("Customer: " + v.CustomerName)
	}
	rule()
	for _, sec := range v.Sections {
		text(strings.ToUpper(sec.Category))
		for _, l := range sec.Lines {
			pair(v.Qty(l.Quantity)+" x "+l.Name, v.Money(l.Total))
		}
	}
	rule()
	pair("Items total", v.Money(v.ItemsTotal))
	if v.DeliveryCharge != 0 {
		pair("Delivery", v.Money(v.DeliveryCharge))
	}
	pair("TOTAL", v.Money(v.GrandTotal))
	if v.PaymentMethod != "" {
		text("Paid by: " + v.PaymentMethod)
	}
	if v.Footer != "" {
		rule()
		centered(v.Footer)
	}
	return rows
}

func clip(s string, n int) string {
	if n < 1 {
		n = 1
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
