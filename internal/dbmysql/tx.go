package dbmysql

import (
	"context"
	"sync"

	"gorm.io/gorm"

	"zentra/internal/common"
)

type txKey struct{}

type txState struct {
	tx *gorm.DB

	mu          sync.Mutex
	afterCommit []func()
}

// Transactor runs functions inside one database transaction. Repositories
// pick the transaction up from the context, so domain writes and the
// notification insert commit or roll back together.
type Transactor struct {
	db *gorm.DB
}

func NewTransactor(db *gorm.DB) *Transactor {
	return &Transactor{db: db}
}

// Transaction joins an enclosing transaction when ctx already carries one.
// Errors returned by fn pass through unchanged; begin and commit failures
// are reported as persistence errors. Hooks registered with AfterCommit run
// once the outermost transaction commits.
func (t *Transactor) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*txState); ok {
		return fn(ctx)
	}

	state := &txState{}
	var fnErr error
	err := t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		state.tx = tx
		fnErr = fn(context.WithValue(ctx, txKey{}, state))
		return fnErr
	})
	if err != nil {
		if fnErr != nil {
			return fnErr
		}
		return common.Persistence("transaction", err)
	}

	state.mu.Lock()
	hooks := state.afterCommit
	state.afterCommit = nil
	state.mu.Unlock()
	for _, hook := range hooks {
		hook()
	}
	return nil
}

// AfterCommit runs fn after the transaction carried by ctx commits, and drops
// it on rollback. Without a transaction in ctx fn runs immediately.
func (t *Transactor) AfterCommit(ctx context.Context, fn func()) {
	state, ok := ctx.Value(txKey{}).(*txState)
	if !ok {
		fn()
		return
	}
	state.mu.Lock()
	state.afterCommit = append(state.afterCommit, fn)
	state.mu.Unlock()
}

// conn returns the transaction carried by ctx, or db bound to ctx.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if state, ok := ctx.Value(txKey{}).(*txState); ok {
		return state.tx
	}
	return db.WithContext(ctx)
}
