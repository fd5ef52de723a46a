package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/restaurant-admin/internal/data/repos"
	"github.com/yungbote/restaurant-admin/internal/platform/logger"
)

type Repos struct {
	Snapshots repos.SnapshotRepo
	Audit     repos.AuditRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Snapshots: repos.NewSnapshotRepo(db, log),
		Audit:     repos.NewAuditRepo(db, log),
	}
}
