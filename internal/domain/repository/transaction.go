package repository

import "context"

// TransactionManager defines the interface for managing multi-step atomic
// operations without the usecase layer depending on a specific backend.
type TransactionManager interface {
	// Execute runs a function within a transaction. If the function returns
	// an error the transaction is rolled back, otherwise committed. All
	// repositories obtained from the factory share the same transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory hands out repository instances bound to one transaction.
type RepositoryFactory interface {
	// UserRepo returns a UserRepository bound to the current transaction.
	UserRepo() UserRepository

	// SalonRepo returns a SalonRepository bound to the current transaction.
	SalonRepo() SalonRepository

	// BookingRepo returns a BookingRepository bound to the current transaction.
	BookingRepo() BookingRepository

	// ReviewRepo returns a ReviewRepository bound to the current transaction.
	ReviewRepo() ReviewRepository
}
