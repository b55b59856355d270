package repository

import "context"

// TxRepos are repositories bound to one transaction.
type TxRepos interface {
	Orders() OrderRepository
	OrderItems() OrderItemRepository
	CartLines() CartLineRepository
	Addresses() AddressRepository
	Inventory() InventoryRepository
	Products() ProductRepository
	AuditLogs() AuditLogRepository

	// Savepoint runs fn in a nested transaction that can fail without
	// aborting the outer one.
	Savepoint(ctx context.Context, fn func(r TxRepos) error) error
}

// TransactionManager hides begin/commit/rollback from usecases.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
