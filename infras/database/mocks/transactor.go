package mocks

import (
	"context"

	"github.com/Pawan0019/Hotel-Room-Booking/infras/database"
)

type transactorImpl struct {
	calls int
}

// RunInTx implements database.Transactor. fn gets a nil tx; repository mocks ignore it.
func (t *transactorImpl) RunInTx(ctx context.Context, fn database.TxFunc) error {
	t.calls++

	return fn(ctx, nil)
}

// Calls returns how many transactions were started.
func (t *transactorImpl) Calls() int {
	return t.calls
}

// Transactor is a database.Transactor that records how often it was used.
type Transactor interface {
	database.Transactor
	Calls() int
}

func NewTransactor() Transactor {
	return &transactorImpl{}
}
