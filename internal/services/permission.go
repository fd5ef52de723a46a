package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/yungbote/restaurant-admin/internal/aggregate"
	"github.com/yungbote/restaurant-admin/internal/domain"
	"github.com/yungbote/restaurant-admin/internal/platform/apierr"
	"github.com/yungbote/restaurant-admin/internal/platform/logger"
)

// OtherModule collects permissions with an empty action prefix.
const OtherModule = "Other"

// PermissionGroups groups permissions by the action prefix before the first
// separator, in first-seen order.
func PermissionGroups(perms []domain.Permission) []aggregate.Group[string, domain.Permission] {
	return aggregate.By(perms, aggregate.Accessors[domain.Permission, string, domain.Permission]{
		Key:      domain.Permission.Module,
		Summary:  domain.Permission.Module,
		Child:    func(p domain.Permission) domain.Permission { return p },
		Fallback: OtherModule,
	})
}

// ToggleAll is the "select all" action: when the selection is as large as the
// candidate set it is cleared, otherwise every candidate is selected. Only
// the counts of distinct IDs are compared.
func ToggleAll(selected, all []domain.ID) []domain.ID {
	if len(dedupe(selected)) == len(dedupe(all)) {
		return []domain.ID{}
	}
	return dedupe(all)
}

// ToggleGroup applies ToggleAll to one group's candidates. Selections outside
// the group are kept in their original order.
func ToggleGroup(selected, group []domain.ID) []domain.ID {
	inGroup := make(map[domain.ID]struct{}, len(group))
	for _, id := range group {
		inGroup[id] = struct{}{}
	}
	others := make([]domain.ID, 0, len(selected))
	var current []domain.ID
	for _, id := range selected {
		if _, ok := inGroup[id]; ok {
			current = append(current, id)
			continue
		}
		others = append(others, id)
	}
	return append(others, ToggleAll(current, group)...)
}

func dedupe(ids []domain.ID) []domain.ID {
	seen := make(map[domain.ID]struct{}, len(ids))
	out := make([]domain.ID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

type PermissionOption struct {
	ID          domain.ID `json:"id"`
	Action      string    `json:"action"`
	Operation   string    `json:"operation"`
	Description string    `json:"description,omitempty"`
	Selected    bool      `json:"selected"`
}

type PermissionModule struct {
	Key         string             `json:"key"`
	Label       string             `json:"label"`
	Permissions []PermissionOption `json:"permissions"`
	AllSelected bool               `json:"all_selected"`
}

type RolePermissions struct {
	Role        domain.Role        `json:"role"`
	Modules     []PermissionModule `json:"modules"`
	SelectedIDs []domain.ID        `json:"selected_ids"`
	AllSelected bool               `json:"all_selected"`
}

type PermissionEditor struct {
	log         *logger.Logger
	roles       *Resource[domain.Role]
	permissions *Resource[domain.Permission]
	labels      map[string]string
}

// NewPermissionEditor builds the role permission editor. labels maps module
// keys to display names; missing keys are title-cased.
func NewPermissionEditor(log *logger.Logger, roles *Resource[domain.Role], permissions *Resource[domain.Permission], labels map[string]string) *PermissionEditor {
	return &PermissionEditor{
		log:         log.With("service", "PermissionEditor"),
		roles:       roles,
		permissions: permissions,
		labels:      labels,
	}
}

// Label is the display name of a module key.
func (e *PermissionEditor) Label(module string) string {
	if l, ok := e.labels[module]; ok && strings.TrimSpace(l) != "" {
		return l
	}
	return cases.Title(language.English).String(strings.NewReplacer("_", " ", "-", " ").Replace(module))
}

func (e *PermissionEditor) View(ctx context.Context, roleID string) (RolePermissions, error) {
	role, err := e.roles.Get(ctx, roleID)
	if err != nil {
		return RolePermissions{}, err
	}
	all, err := e.catalog(ctx)
	if err != nil {
		return RolePermissions{}, err
	}
	return e.build(role, all, role.PermissionIDs()), nil
}

// catalog is every permission the backend knows. A stale list is not good
// enough to edit against.
func (e *PermissionEditor) catalog(ctx context.Context) ([]domain.Permission, error) {
	res, err := e.permissions.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	return res.Items, nil
}

func (e *PermissionEditor) build(role domain.Role, all []domain.Permission, selected []domain.ID) RolePermissions {
	chosen := make(map[domain.ID]struct{}, len(selected))
	for _, id := range selected {
		chosen[id] = struct{}{}
	}

	out := RolePermissions{Role: role, SelectedIDs: dedupe(selected)}
	groups := PermissionGroups(all)
	out.Modules = make([]PermissionModule, 0, len(groups))
	for _, g := range groups {
		m := PermissionModule{Key: g.Key, Label: e.Label(g.Key)}
		picked := 0
		for _, p := range g.Children {
			_, ok := chosen[p.ID]
			if ok {
				picked++
			}
			m.Permissions = append(m.Permissions, PermissionOption{
				ID:          p.ID,
				Action:      p.Action,
				Operation:   p.Operation(),
				Description: p.Description,
				Selected:    ok,
			})
		}
		m.AllSelected = len(g.Children) > 0 && picked == len(g.Children)
		out.Modules = append(out.Modules, m)
	}
	out.AllSelected = len(all) > 0 && len(out.SelectedIDs) == len(all)
	return out
}

// Save replaces the role's permission set. Unknown IDs are rejected before
// the backend is called.
func (e *PermissionEditor) Save(ctx context.Context, roleID string, ids []domain.ID) (RolePermissions, error) {
	role, err := e.roles.Get(ctx, roleID)
	if err != nil {
		return RolePermissions{}, err
	}
	all, err := e.catalog(ctx)
	if err != nil {
		return RolePermissions{}, err
	}
	known := make(map[domain.ID]struct{}, len(all))
	for _, p := range all {
		known[p.ID] = struct{}{}
	}
	ids = dedupe(ids)
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return RolePermissions{}, apierr.BadRequest("unknown_permission", fmt.Errorf("unknown permission id %q", id))
		}
	}

	updated, err := e.roles.Update(ctx, roleID, Fields{
		"name":           role.Name,
		"description":    role.Description,
		"permission_ids": ids,
	})
	if err != nil {
		return RolePermissions{}, err
	}
	e.log.Info("role permissions saved", "role_id", roleID, "count", len(ids))

	selected := updated.PermissionIDs()
	if len(updated.Permissions) == 0 {
		selected = ids
	}
	return e.build(updated, all, selected), nil
}
