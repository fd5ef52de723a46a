package repos

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/restaurant-admin/internal/data/dbctx"
	"github.com/yungbote/restaurant-admin/internal/domain"
	"github.com/yungbote/restaurant-admin/internal/platform/logger"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

type SnapshotRepo interface {
	// Upsert replaces the operator's snapshot for the resource.
	Upsert(dbc dbctx.Context, snap *domain.ListSnapshot) error
	Get(dbc dbctx.Context, operatorID, resource string) (*domain.ListSnapshot, error)
	DeleteOlderThan(dbc dbctx.Context, before time.Time) (int64, error)
}

type snapshotRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSnapshotRepo(db *gorm.DB, baseLog *logger.Logger) SnapshotRepo {
	return &snapshotRepo{db: db, log: baseLog.With("repo", "SnapshotRepo")}
}

func (r *snapshotRepo) Upsert(dbc dbctx.Context, snap *domain.ListSnapshot) error {
	if snap == nil || strings.TrimSpace(snap.OperatorID) == "" || strings.TrimSpace(snap.Resource) == "" {
		return domain.ErrInvalid
	}
	now := time.Now().UTC()
	if snap.FetchedAt.IsZero() {
		snap.FetchedAt = now
	}
	snap.UpdatedAt = now
	return dbc.Conn(r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "operator_id"}, {Name: "resource"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "item_count", "fetched_at", "updated_at"}),
		}).
		Create(snap).Error
}

func (r *snapshotRepo) Get(dbc dbctx.Context, operatorID, resource string) (*domain.ListSnapshot, error) {
	var snap domain.ListSnapshot
	err := dbc.Conn(r.db).
		Where("operator_id = ? AND resource = ?", operatorID, resource).
		Take(&snap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func (r *snapshotRepo) DeleteOlderThan(dbc dbctx.Context, before time.Time) (int64, error) {
	res := dbc.Conn(r.db).Where("fetched_at < ?", before).Delete(&domain.ListSnapshot{})
	return res.RowsAffected, res.Error
}
