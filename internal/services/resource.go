package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"sort"
	"time"

	"gorm.io/datatypes"

	"github.com/yungbote/restaurant-admin/internal/data/dbctx"
	"github.com/yungbote/restaurant-admin/internal/data/repos"
	"github.com/yungbote/restaurant-admin/internal/domain"
	"github.com/yungbote/restaurant-admin/internal/observability"
	"github.com/yungbote/restaurant-admin/internal/platform/ctxutil"
	"github.com/yungbote/restaurant-admin/internal/platform/logger"
)

// Upstream is the CRUD surface of one backend collection.
type Upstream[T domain.Record] interface {
	List(ctx context.Context, query url.Values) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, body any) (T, error)
	Update(ctx context.Context, id string, body any) (T, error)
	Delete(ctx context.Context, id string) error
}

// Fields is a create or update payload as submitted by a form. It is
// forwarded to the backend as-is.
type Fields map[string]any

// ListResult is what a list screen renders. Stale is set when the refresh
// failed and Items is the operator's last successful list.
type ListResult[T any] struct {
	Items     []T        `json:"items"`
	Stale     bool       `json:"stale"`
	FetchedAt *time.Time `json:"fetched_at,omitempty"`
}

// Resource is the screen service shared by every CRUD collection.
type Resource[T domain.Record] struct {
	log       *logger.Logger
	name      string
	upstream  Upstream[T]
	snapshots repos.SnapshotRepo
	audit     repos.AuditRepo
	now       func() time.Time
}

// NewResource builds the service for one collection. snapshots and audit may
// be nil, which disables the fallback list and the audit trail.
func NewResource[T domain.Record](log *logger.Logger, name string, upstream Upstream[T], snapshots repos.SnapshotRepo, audit repos.AuditRepo) *Resource[T] {
	return &Resource[T]{
		log:       log.With("service", "ResourceService", "resource", name),
		name:      name,
		upstream:  upstream,
		snapshots: snapshots,
		audit:     audit,
		now:       time.Now,
	}
}

func (r *Resource[T]) Name() string { return r.name }

// snapshotKey separates filtered lists from the unfiltered one.
func (r *Resource[T]) snapshotKey(query url.Values) string {
	if len(query) == 0 {
		return r.name
	}
	return r.name + "?" + query.Encode()
}

// List fetches the collection. On success the result replaces the operator's
// snapshot, unless ctx has already ended: a late response is dropped. On
// failure the previous snapshot (or an empty list) comes back with the error.
func (r *Resource[T]) List(ctx context.Context, query url.Values) (ListResult[T], error) {
	items, err := r.upstream.List(ctx, query)
	if err != nil {
		return r.fallback(ctx, query), err
	}
	if err := ctx.Err(); err != nil {
		r.log.Debug("dropping late list response", "error", err)
		return ListResult[T]{Items: []T{}}, err
	}
	now := r.now().UTC()
	r.saveSnapshot(ctx, query, items, now)
	return ListResult[T]{Items: items, FetchedAt: &now}, nil
}

func (r *Resource[T]) saveSnapshot(ctx context.Context, query url.Values, items []T, at time.Time) {
	operator := ctxutil.OperatorID(ctx)
	if r.snapshots == nil || operator == "" {
		return
	}
	raw, err := json.Marshal(items)
	if err != nil {
		r.log.Warn("encode snapshot failed", "error", err)
		return
	}
	snap := &domain.ListSnapshot{
		OperatorID: operator,
		Resource:   r.snapshotKey(query),
		Payload:    datatypes.JSON(raw),
		ItemCount:  len(items),
		FetchedAt:  at,
	}
	if err := r.snapshots.Upsert(dbctx.New(ctx), snap); err != nil {
		r.log.Warn("save snapshot failed", "error", err, "operator", operator)
	}
}

func (r *Resource[T]) fallback(ctx context.Context, query url.Values) ListResult[T] {
	observability.Current().IncSnapshotFallback(r.name)
	empty := ListResult[T]{Items: []T{}, Stale: true}
	operator := ctxutil.OperatorID(ctx)
	if r.snapshots == nil || operator == "" {
		return empty
	}
	snap, err := r.snapshots.Get(dbctx.New(context.WithoutCancel(ctx)), operator, r.snapshotKey(query))
	if err != nil {
		if !errors.Is(err, repos.ErrSnapshotNotFound) {
			r.log.Warn("load snapshot failed", "error", err, "operator", operator)
		}
		return empty
	}
	var items []T
	if err := json.Unmarshal(snap.Payload, &items); err != nil {
		r.log.Warn("decode snapshot failed", "error", err, "operator", operator)
		return empty
	}
	if items == nil {
		items = []T{}
	}
	at := snap.FetchedAt
	return ListResult[T]{Items: items, Stale: true, FetchedAt: &at}
}

func (r *Resource[T]) Get(ctx context.Context, id string) (T, error) {
	return r.upstream.Get(ctx, id)
}

func (r *Resource[T]) Create(ctx context.Context, in Fields) (T, error) {
	out, err := r.upstream.Create(ctx, in)
	if err != nil {
		return out, err
	}
	r.record(ctx, domain.AuditCreate, out.RecordID(), in)
	return out, nil
}

func (r *Resource[T]) Update(ctx context.Context, id string, in Fields) (T, error) {
	out, err := r.upstream.Update(ctx, id, in)
	if err != nil {
		return out, err
	}
	entity := out.RecordID()
	if entity == "" {
		entity = id
	}
	r.record(ctx, domain.AuditUpdate, entity, in)
	return out, nil
}

func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	if err := r.upstream.Delete(ctx, id); err != nil {
		return err
	}
	r.record(ctx, domain.AuditDelete, id, nil)
	return nil
}

// record writes an audit entry. Only field names are kept; values may carry
// passwords or personal data.
func (r *Resource[T]) record(ctx context.Context, action, entityID string, in Fields) {
	if r.audit == nil {
		return
	}
	entry := &domain.AuditEntry{
		OperatorID: ctxutil.OperatorID(ctx),
		Resource:   r.name,
		Action:     action,
		EntityID:   entityID,
		RequestID:  ctxutil.RequestID(ctx),
		CreatedAt:  r.now().UTC(),
	}
	if len(in) > 0 {
		if raw, err := json.Marshal(map[string]any{"fields": fieldNames(in)}); err == nil {
			entry.Details = datatypes.JSON(raw)
		}
	}
	if err := r.audit.Create(dbctx.New(context.WithoutCancel(ctx)), entry); err != nil {
		observability.Current().IncAuditFailure()
		r.log.Warn("audit write failed", "error", err, "action", action, "entity_id", entityID)
	}
}

func fieldNames(in Fields) []string {
	out := make([]string, 0, len(in))
	for k := range in {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
