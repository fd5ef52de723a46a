package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/yungbote/restaurant-admin/internal/domain"
)

// Upstream resource paths.
const (
	PathBranches    = "/branches"
	PathMenuItems   = "/menu-items"
	PathRecipes     = "/recipes"
	PathRestaurants = "/restaurants"
	PathRoles       = "/roles"
	PathPermissions = "/permissions"
	PathUsers       = "/users"
	PathSettings    = "/settings"
	PathPayments    = "/payments"
	PathOrders      = "/orders"
	PathLogin       = "/auth/login"
)

func decodeOne[T domain.Validator](method, path string, raw json.RawMessage) (T, error) {
	var out T
	if isNull(raw) {
		return out, fmt.Errorf("%w: %s %s: empty data", ErrMalformedPayload, method, path)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("%w: %s %s: %v", ErrMalformedPayload, method, path, err)
	}
	if err := out.Validate(); err != nil {
		return out, fmt.Errorf("%w: %s %s: %v", ErrMalformedPayload, method, path, err)
	}
	return out, nil
}

func decodeList[T domain.Validator](method, path string, raw json.RawMessage) ([]T, error) {
	out := make([]T, 0)
	if isNull(raw) {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrMalformedPayload, method, path, err)
	}
	if err := domain.ValidateAll(out); err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrMalformedPayload, method, path, err)
	}
	return out, nil
}

// GetList fetches and validates a list payload. A null payload is an empty
// list.
func GetList[T domain.Validator](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	raw, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[T](http.MethodGet, path, raw)
}

// GetOne fetches and validates a single record.
func GetOne[T domain.Validator](ctx context.Context, c *Client, path string) (T, error) {
	raw, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeOne[T](http.MethodGet, path, raw)
}

// Send issues a mutating request and validates the returned record.
func Send[T domain.Validator](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	raw, err := c.do(ctx, method, path, nil, body)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeOne[T](method, path, raw)
}

// Delete issues a DELETE; any returned data is ignored.
func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	return err
}

// Resource is the CRUD surface of one upstream collection.
type Resource[T domain.Validator] struct {
	client *Client
	path   string
}

func NewResource[T domain.Validator](c *Client, path string) *Resource[T] {
	return &Resource[T]{client: c, path: path}
}

func (r *Resource[T]) Path() string { return r.path }

func (r *Resource[T]) item(id string) string {
	return r.path + "/" + url.PathEscape(id)
}

func (r *Resource[T]) List(ctx context.Context, query url.Values) ([]T, error) {
	return GetList[T](ctx, r.client, r.path, query)
}

func (r *Resource[T]) Get(ctx context.Context, id string) (T, error) {
	return GetOne[T](ctx, r.client, r.item(id))
}

func (r *Resource[T]) Create(ctx context.Context, body any) (T, error) {
	return Send[T](ctx, r.client, http.MethodPost, r.path, body)
}

func (r *Resource[T]) Update(ctx context.Context, id string, body any) (T, error) {
	return Send[T](ctx, r.client, http.MethodPut, r.item(id), body)
}

func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	return r.client.Delete(ctx, r.item(id))
}

// Resources bundles the typed clients for every screen.
type Resources struct {
	Branches    *Resource[domain.Branch]
	MenuItems   *Resource[domain.MenuItem]
	Recipes     *Resource[domain.Recipe]
	Restaurants *Resource[domain.Restaurant]
	Roles       *Resource[domain.Role]
	Permissions *Resource[domain.Permission]
	Users       *Resource[domain.User]
	Settings    *Resource[domain.Setting]
	Payments    *Resource[domain.Payment]
	Orders      *Resource[domain.Order]
}

func NewResources(c *Client) Resources {
	return Resources{
		Branches:    NewResource[domain.Branch](c, PathBranches),
		MenuItems:   NewResource[domain.MenuItem](c, PathMenuItems),
		Recipes:     NewResource[domain.Recipe](c, PathRecipes),
		Restaurants: NewResource[domain.Restaurant](c, PathRestaurants),
		Roles:       NewResource[domain.Role](c, PathRoles),
		Permissions: NewResource[domain.Permission](c, PathPermissions),
		Users:       NewResource[domain.User](c, PathUsers),
		Settings:    NewResource[domain.Setting](c, PathSettings),
		Payments:    NewResource[domain.Payment](c, PathPayments),
		Orders:      NewResource[domain.Order](c, PathOrders),
	}
}
