package ports

import "context"

// TxManager groups store writes. fn must use the ctx it is handed so repos
// see the transaction.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
