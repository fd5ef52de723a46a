package dbctx

import (
	"context"

	"gorm.io/gorm"
)

// Context carries a request context and, when the caller is inside one, a
// transaction that repos should use instead of their own handle.
type Context struct {
	Ctx context.Context
	Tx  *gorm.DB
}

func New(ctx context.Context) Context {
	return Context{Ctx: ctx}
}

// Conn returns the transaction if set, else fallback, scoped to Ctx.
func (c Context) Conn(fallback *gorm.DB) *gorm.DB {
	db := c.Tx
	if db == nil {
		db = fallback
	}
	ctx := c.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return db.WithContext(ctx)
}
