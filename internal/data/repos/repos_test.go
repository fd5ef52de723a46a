package repos

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/datatypes"

	"github.com/yungbote/restaurant-admin/internal/data/dbctx"
	"github.com/yungbote/restaurant-admin/internal/data/repos/testutil"
	"github.com/yungbote/restaurant-admin/internal/domain"
)

func TestSnapshotRepoUpsertReplaces(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewSnapshotRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	if _, err := repo.Get(dbc, "op-1", "menuitems"); !errors.Is(err, ErrSnapshotNotFound) {
		t.Fatalf("Get before upsert: got=%v", err)
	}

	first := &domain.ListSnapshot{
		OperatorID: "op-1",
		Resource:   "menuitems",
		Payload:    datatypes.JSON(`[{"id":1}]`),
		ItemCount:  1,
	}
	if err := repo.Upsert(dbc, first); err != nil {
		t.Fatalf("Upsert first: %v", err)
	}
	second := &domain.ListSnapshot{
		OperatorID: "op-1",
		Resource:   "menuitems",
		Payload:    datatypes.JSON(`[{"id":1},{"id":2}]`),
		ItemCount:  2,
	}
	if err := repo.Upsert(dbc, second); err != nil {
		t.Fatalf("Upsert second: %v", err)
	}

	got, err := repo.Get(dbc, "op-1", "menuitems")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ItemCount != 2 || string(got.Payload) != `[{"id":1},{"id":2}]` {
		t.Fatalf("Get: got count=%d payload=%s", got.ItemCount, got.Payload)
	}

	if _, err := repo.Get(dbc, "op-2", "menuitems"); !errors.Is(err, ErrSnapshotNotFound) {
		t.Fatalf("snapshots must be per operator: got=%v", err)
	}
}

func TestSnapshotRepoRejectsIncompleteKey(t *testing.T) {
	db := testutil.DB(t)
	repo := NewSnapshotRepo(db, testutil.Logger(t))
	err := repo.Upsert(dbctx.New(context.Background()), &domain.ListSnapshot{Resource: "orders"})
	if !errors.Is(err, domain.ErrInvalid) {
		t.Fatalf("got=%v want ErrInvalid", err)
	}
}

func TestSnapshotRepoDeleteOlderThan(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewSnapshotRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	now := time.Now().UTC()
	old := &domain.ListSnapshot{OperatorID: "op-1", Resource: "orders", Payload: datatypes.JSON(`[]`), FetchedAt: now.Add(-48 * time.Hour)}
	fresh := &domain.ListSnapshot{OperatorID: "op-1", Resource: "users", Payload: datatypes.JSON(`[]`), FetchedAt: now}
	for _, s := range []*domain.ListSnapshot{old, fresh} {
		if err := repo.Upsert(dbc, s); err != nil {
			t.Fatalf("Upsert: %v", err)
		}
	}

	n, err := repo.DeleteOlderThan(dbc, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteOlderThan: %v", err)
	}
	if n != 1 {
		t.Fatalf("deleted: got=%d want=1", n)
	}
	if _, err := repo.Get(dbc, "op-1", "users"); err != nil {
		t.Fatalf("fresh snapshot gone: %v", err)
	}
}

func TestAuditRepoListFiltersNewestFirst(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewAuditRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []*domain.AuditEntry{
		{OperatorID: "op-1", Resource: "menuitems", Action: domain.AuditCreate, EntityID: "7", CreatedAt: base},
		{OperatorID: "op-1", Resource: "menuitems", Action: domain.AuditUpdate, EntityID: "7", CreatedAt: base.Add(time.Minute)},
		{OperatorID: "op-2", Resource: "roles", Action: domain.AuditDelete, EntityID: "3", CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, e := range entries {
		if err := repo.Create(dbc, e); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.List(dbc, AuditFilter{Resource: "menuitems"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("List: got=%d entries want=2", len(got))
	}
	if got[0].Action != domain.AuditUpdate || got[1].Action != domain.AuditCreate {
		t.Fatalf("order: got=%s,%s want update,create", got[0].Action, got[1].Action)
	}

	got, err = repo.List(dbc, AuditFilter{OperatorID: "op-2", Limit: 1})
	if err != nil {
		t.Fatalf("List operator: %v", err)
	}
	if len(got) != 1 || got[0].Resource != "roles" {
		t.Fatalf("List operator: got=%+v", got)
	}

	if err := repo.Create(dbc, &domain.AuditEntry{Resource: "roles"}); !errors.Is(err, domain.ErrInvalid) {
		t.Fatalf("missing action: got=%v", err)
	}
}
