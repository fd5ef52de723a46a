package services

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/yungbote/restaurant-admin/internal/data/dbctx"
	"github.com/yungbote/restaurant-admin/internal/data/repos"
	"github.com/yungbote/restaurant-admin/internal/data/repos/testutil"
	"github.com/yungbote/restaurant-admin/internal/domain"
	"github.com/yungbote/restaurant-admin/internal/platform/ctxutil"
	"github.com/yungbote/restaurant-admin/internal/platform/logger"
)

func operatorCtx(id string) context.Context {
	ctx := ctxutil.WithAuthData(context.Background(), &ctxutil.AuthData{SessionID: "s-" + id, UserID: id, BackendToken: "tok"})
	return ctxutil.WithTraceData(ctx, &ctxutil.TraceData{RequestID: "req-1"})
}

func newStores(t *testing.T) (repos.SnapshotRepo, repos.AuditRepo) {
	t.Helper()
	db := testutil.DB(t)
	return repos.NewSnapshotRepo(db, testutil.Logger(t)), repos.NewAuditRepo(db, testutil.Logger(t))
}

func TestResourceListFallsBackToSnapshot(t *testing.T) {
	snaps, audit := newStores(t)
	up := &fakeUpstream[domain.Branch]{list: []domain.Branch{{ID: "1", Name: "Downtown"}, {ID: "2", Name: "Harbor"}}}
	svc := NewResource[domain.Branch](logger.NewNop(), "branches", up, snaps, audit)
	ctx := operatorCtx("op-1")

	res, err := svc.List(ctx, nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if res.Stale || len(res.Items) != 2 || res.FetchedAt == nil {
		t.Fatalf("fresh list: got=%+v", res)
	}

	up.listErr = errors.New("upstream down")
	res, err = svc.List(ctx, nil)
	if err == nil {
		t.Fatalf("expected upstream error")
	}
	if !res.Stale || len(res.Items) != 2 || res.Items[1].Name != "Harbor" {
		t.Fatalf("fallback list: got=%+v", res)
	}

	res, err = svc.List(operatorCtx("op-2"), nil)
	if err == nil || !res.Stale || len(res.Items) != 0 || res.Items == nil {
		t.Fatalf("other operator fallback: got=%+v err=%v", res, err)
	}
}

func TestResourceListSnapshotsPerQuery(t *testing.T) {
	snaps, _ := newStores(t)
	up := &fakeUpstream[domain.MenuItem]{list: []domain.MenuItem{{ID: "1", Name: "Soup", Price: 4}}}
	svc := NewResource[domain.MenuItem](logger.NewNop(), "menuitems", up, snaps, nil)
	ctx := operatorCtx("op-1")

	filtered := url.Values{"branch_id": {"9"}}
	if _, err := svc.List(ctx, filtered); err != nil {
		t.Fatalf("List filtered: %v", err)
	}
	if _, err := snaps.Get(dbctx.New(context.Background()), "op-1", "menuitems"); !errors.Is(err, repos.ErrSnapshotNotFound) {
		t.Fatalf("filtered list must not replace the unfiltered snapshot: %v", err)
	}
	if _, err := snaps.Get(dbctx.New(context.Background()), "op-1", "menuitems?branch_id=9"); err != nil {
		t.Fatalf("filtered snapshot: %v", err)
	}
}

func TestResourceListDropsLateResponse(t *testing.T) {
	snaps, _ := newStores(t)
	ctx, cancel := context.WithCancel(operatorCtx("op-1"))
	up := &fakeUpstream[domain.Branch]{
		list:   []domain.Branch{{ID: "1", Name: "Downtown"}},
		onList: cancel,
	}
	svc := NewResource[domain.Branch](logger.NewNop(), "branches", up, snaps, nil)

	res, err := svc.List(ctx, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got err=%v want context.Canceled", err)
	}
	if len(res.Items) != 0 {
		t.Fatalf("late response leaked: %+v", res.Items)
	}
	if _, err := snaps.Get(dbctx.New(context.Background()), "op-1", "branches"); !errors.Is(err, repos.ErrSnapshotNotFound) {
		t.Fatalf("late response was applied to the snapshot: %v", err)
	}
}

func TestResourceMutationsAreAudited(t *testing.T) {
	_, audit := newStores(t)
	up := &fakeUpstream[domain.User]{sent: domain.User{ID: "5", Email: "cook@example.com"}}
	svc := NewResource[domain.User](logger.NewNop(), "users", up, nil, audit)
	ctx := operatorCtx("op-1")

	if _, err := svc.Create(ctx, Fields{"email": "cook@example.com", "password": "pw"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Update(ctx, "5", Fields{"name": "Cook"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := svc.Delete(ctx, "5"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	up.delErr = errors.New("conflict")
	if err := svc.Delete(ctx, "6"); err == nil {
		t.Fatalf("expected delete error")
	}

	entries, err := audit.List(dbctx.New(context.Background()), repos.AuditFilter{Resource: "users"})
	if err != nil {
		t.Fatalf("audit list: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("audit entries: got=%d want=3", len(entries))
	}
	actions := map[string]bool{}
	for _, e := range entries {
		actions[e.Action] = true
		if e.OperatorID != "op-1" || e.EntityID != "5" || e.RequestID != "req-1" {
			t.Fatalf("audit entry: got=%+v", e)
		}
	}
	for _, a := range []string{domain.AuditCreate, domain.AuditUpdate, domain.AuditDelete} {
		if !actions[a] {
			t.Fatalf("missing audit action %q", a)
		}
	}
	for _, e := range entries {
		if e.Action == domain.AuditCreate && string(e.Details) != `{"fields":["email","password"]}` {
			t.Fatalf("create details: got=%s", e.Details)
		}
	}
}
