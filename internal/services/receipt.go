package services

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/restaurant-admin/internal/domain"
	"github.com/yungbote/restaurant-admin/internal/platform/apierr"
	"github.com/yungbote/restaurant-admin/internal/platform/logger"
	"github.com/yungbote/restaurant-admin/internal/receipt"
)

// Setting keys that override the configured receipt branding.
const (
	SettingCurrencySymbol = "currency_symbol"
	SettingReceiptHeader  = "receipt_header"
	SettingReceiptFooter  = "receipt_footer"
	SettingLocale         = "locale"
)

type ReceiptService struct {
	log         *logger.Logger
	orders      Upstream[domain.Order]
	restaurants Upstream[domain.Restaurant]
	settings    Upstream[domain.Setting]
	branding    receipt.Branding
}

func NewReceiptService(log *logger.Logger, orders Upstream[domain.Order], restaurants Upstream[domain.Restaurant], settings Upstream[domain.Setting], branding receipt.Branding) *ReceiptService {
	return &ReceiptService{
		log:         log.With("service", "ReceiptService"),
		orders:      orders,
		restaurants: restaurants,
		settings:    settings,
		branding:    branding,
	}
}

// Build fetches the order, the restaurant profile and the settings together.
// Only the order is required; the other two fall back to configured branding.
func (s *ReceiptService) Build(ctx context.Context, orderID string) (receipt.View, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return receipt.View{}, apierr.BadRequest("invalid_request", errors.New("order id is required"))
	}

	var (
		order      domain.Order
		restaurant *domain.Restaurant
		settings   map[string]string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		o, err := s.orders.Get(gctx, orderID)
		if err != nil {
			return err
		}
		order = o
		return nil
	})
	g.Go(func() error {
		list, err := s.restaurants.List(gctx, nil)
		if err != nil {
			s.log.Warn("restaurant profile unavailable for receipt", "error", err)
			return nil
		}
		if len(list) > 0 {
			restaurant = &list[0]
		}
		return nil
	})
	g.Go(func() error {
		list, err := s.settings.List(gctx, nil)
		if err != nil {
			s.log.Warn("settings unavailable for receipt", "error", err)
			return nil
		}
		settings = domain.SettingsMap(list)
		return nil
	})
	if err := g.Wait(); err != nil {
		return receipt.View{}, err
	}

	b := brandingFromSettings(settings).Merge(s.branding)
	return receipt.Build(order, restaurant, b), nil
}

func brandingFromSettings(m map[string]string) receipt.Branding {
	return receipt.Branding{
		CurrencySymbol: m[SettingCurrencySymbol],
		Header:         m[SettingReceiptHeader],
		Footer:         m[SettingReceiptFooter],
		Locale:         m[SettingLocale],
	}
}
