package firestore

import (
	"context"

	"lamsa/internal/domain/repository"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
)

// firestoreTransactionManager implements the domain's TransactionManager on
// RunTransaction. Repositories handed out by the factory route their writes
// through the running transaction, so every write in fn commits or aborts as
// one unit. Reads stay on the plain client: Firestore demands all transaction
// reads happen before the first write, an ordering the factory contract
// cannot promise.
type firestoreTransactionManager struct {
	client *firestore.Client
}

// firestoreRepositoryFactory hands out repositories whose writes are bound to
// one transaction.
type firestoreRepositoryFactory struct {
	client *firestore.Client
	tx     *firestore.Transaction
}

func (f *firestoreRepositoryFactory) UserRepo() repository.UserRepository {
	return newTxUserRepository(f.client, f.tx)
}

func (f *firestoreRepositoryFactory) SalonRepo() repository.SalonRepository {
	return newTxSalonRepository(f.client, f.tx)
}

func (f *firestoreRepositoryFactory) BookingRepo() repository.BookingRepository {
	return newTxBookingRepository(f.client, f.tx)
}

func (f *firestoreRepositoryFactory) ReviewRepo() repository.ReviewRepository {
	return newTxReviewRepository(f.client, f.tx)
}

// NewTransactionManager is the constructor for firestoreTransactionManager.
func NewTransactionManager(client *firestore.Client) repository.TransactionManager {
	return &firestoreTransactionManager{client: client}
}

// Execute runs the given function inside a Firestore transaction.
func (tm *firestoreTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	err := tm.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		return fn(&firestoreRepositoryFactory{client: tm.client, tx: tx})
	})
	if err != nil {
		return errors.Wrap(err, "firestore transaction failed")
	}

	return nil
}
