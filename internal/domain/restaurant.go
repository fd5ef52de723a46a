package domain

import (
	"strings"
	"time"
)

type Restaurant struct {
	ID        ID         `json:"id"`
	Name      string     `json:"name"`
	Address   string     `json:"address,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	Email     string     `json:"email,omitempty"`
	LogoURL   string     `json:"logo_url,omitempty"`
	Currency  string     `json:"currency,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func (r Restaurant) Validate() error {
	if r.ID.IsZero() {
		return invalid("restaurant", "id is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return invalid("restaurant", "name is required")
	}
	return nil
}

type Branch struct {
	ID           ID         `json:"id"`
	RestaurantID ID         `json:"restaurant_id,omitempty"`
	Name         string     `json:"name"`
	Address      string     `json:"address,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

func (b Branch) Validate() error {
	if b.ID.IsZero() {
		return invalid("branch", "id is required")
	}
	if strings.TrimSpace(b.Name) == "" {
		return invalid("branch", "name is required")
	}
	return nil
}

// Setting is one key/value entry of the restaurant configuration.
type Setting struct {
	ID          ID     `json:"id,omitempty"`
	Key         string `json:"key"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

func (s Setting) Validate() error {
	if strings.TrimSpace(s.Key) == "" {
		return invalid("setting", "key is required")
	}
	return nil
}

// SettingsMap indexes settings by key. Later duplicates overwrite earlier ones.
func SettingsMap(settings []Setting) map[string]string {
	out := make(map[string]string, len(settings))
	for _, s := range settings {
		out[strings.TrimSpace(s.Key)] = s.Value
	}
	return out
}
