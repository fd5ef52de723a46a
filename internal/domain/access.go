package domain

import (
	"strings"
	"time"
)

// ActionSeparator splits a permission action into module and operation.
const ActionSeparator = ":"

type Permission struct {
	ID          ID     `json:"id"`
	Action      string `json:"action"`
	Description string `json:"description,omitempty"`
}

func (p Permission) Validate() error {
	if p.ID.IsZero() {
		return invalid("permission", "id is required")
	}
	if strings.TrimSpace(p.Action) == "" {
		return invalid("permission", "action is required")
	}
	return nil
}

// Module is the action up to its first separator, or the whole action when
// there is none.
func (p Permission) Module() string {
	module, _ := SplitAction(p.Action)
	return module
}

// Operation is the part after the first separator, or the whole action.
func (p Permission) Operation() string {
	module, op := SplitAction(p.Action)
	if op == "" {
		return module
	}
	return op
}

// SplitAction splits "orders:edit" into ("orders", "edit"). Only the first
// separator counts: "reports:daily:export" yields ("reports", "daily:export").
func SplitAction(action string) (module, operation string) {
	action = strings.TrimSpace(action)
	module, operation, _ = strings.Cut(action, ActionSeparator)
	return strings.TrimSpace(module), strings.TrimSpace(operation)
}

type Role struct {
	ID          ID           `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Permissions []Permission `json:"permissions,omitempty"`
	CreatedAt   *time.Time   `json:"created_at,omitempty"`
	UpdatedAt   *time.Time   `json:"updated_at,omitempty"`
}

func (r Role) Validate() error {
	if r.ID.IsZero() {
		return invalid("role", "id is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return invalid("role", "name is required")
	}
	return ValidateAll(r.Permissions)
}

// PermissionIDs lists the IDs of the role's permissions in order.
func (r Role) PermissionIDs() []ID {
	out := make([]ID, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		out = append(out, p.ID)
	}
	return out
}

type User struct {
	ID        ID         `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone,omitempty"`
	IsActive  bool       `json:"is_active"`
	BranchID  ID         `json:"branch_id,omitempty"`
	Role      *Role      `json:"role,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func (u User) Validate() error {
	if u.ID.IsZero() {
		return invalid("user", "id is required")
	}
	if strings.TrimSpace(u.Email) == "" {
		return invalid("user", "email is required")
	}
	if u.Role != nil {
		return u.Role.Validate()
	}
	return nil
}

// Actions lists the permission actions granted through the user's role.
func (u User) Actions() []string {
	if u.Role == nil {
		return nil
	}
	out := make([]string, 0, len(u.Role.Permissions))
	for _, p := range u.Role.Permissions {
		out = append(out, strings.TrimSpace(p.Action))
	}
	return out
}
