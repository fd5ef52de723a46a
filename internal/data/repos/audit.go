package repos

import (
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/restaurant-admin/internal/data/dbctx"
	"github.com/yungbote/restaurant-admin/internal/domain"
	"github.com/yungbote/restaurant-admin/internal/platform/logger"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

type AuditFilter struct {
	Resource   string
	OperatorID string
	EntityID   string
	Limit      int
}

type AuditRepo interface {
	Create(dbc dbctx.Context, entry *domain.AuditEntry) error
	// List returns newest entries first.
	List(dbc dbctx.Context, f AuditFilter) ([]*domain.AuditEntry, error)
}

type auditRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAuditRepo(db *gorm.DB, baseLog *logger.Logger) AuditRepo {
	return &auditRepo{db: db, log: baseLog.With("repo", "AuditRepo")}
}

func (r *auditRepo) Create(dbc dbctx.Context, entry *domain.AuditEntry) error {
	if entry == nil || strings.TrimSpace(entry.Resource) == "" || strings.TrimSpace(entry.Action) == "" {
		return domain.ErrInvalid
	}
	return dbc.Conn(r.db).Create(entry).Error
}

func (r *auditRepo) List(dbc dbctx.Context, f AuditFilter) ([]*domain.AuditEntry, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}
	q := dbc.Conn(r.db).Model(&domain.AuditEntry{})
	if v := strings.TrimSpace(f.Resource); v != "" {
		q = q.Where("resource = ?", v)
	}
	if v := strings.TrimSpace(f.OperatorID); v != "" {
		q = q.Where("operator_id = ?", v)
	}
	if v := strings.TrimSpace(f.EntityID); v != "" {
		q = q.Where("entity_id = ?", v)
	}
	out := []*domain.AuditEntry{}
	if err := q.Order("created_at DESC").Limit(limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
