package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// writer routes document writes through a running transaction when one is
// present, otherwise straight at the client. Reads always use the client;
// Firestore transactions demand every read before the first write, which the
// repository contract cannot promise, so only the write side is transactional.
type writer struct {
	tx *firestore.Transaction
}

func (w writer) create(ctx context.Context, ref *firestore.DocumentRef, data any) error {
	if w.tx != nil {
		return w.tx.Create(ref, data)
	}

	_, err := ref.Create(ctx, data)

	return err
}

func (w writer) set(ctx context.Context, ref *firestore.DocumentRef, data any) error {
	if w.tx != nil {
		return w.tx.Set(ref, data)
	}

	_, err := ref.Set(ctx, data)

	return err
}

func (w writer) update(ctx context.Context, ref *firestore.DocumentRef, updates []firestore.Update) error {
	if w.tx != nil {
		return w.tx.Update(ref, updates)
	}

	_, err := ref.Update(ctx, updates)

	return err
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func isAlreadyExists(err error) bool {
	return status.Code(err) == codes.AlreadyExists
}

// collectDocs drains an iterator, decoding every document into T.
func collectDocs[T any](it *firestore.DocumentIterator) ([]*T, error) {
	defer it.Stop()

	var out []*T
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to iterate documents")
		}

		doc := new(T)
		if err := snap.DataTo(doc); err != nil {
			return nil, errors.Wrap(err, "failed to decode document")
		}
		out = append(out, doc)
	}

	return out, nil
}

// newDocID mints a document ID, keeping an already assigned uuid.
func newDocID(id uuid.UUID) uuid.UUID {
	if id == uuid.Nil {
		return uuid.New()
	}

	return id
}

// optionalUUIDString renders a nullable uuid for storage.
func optionalUUIDString(id *uuid.UUID) string {
	if id == nil {
		return ""
	}

	return id.String()
}

// parseOptionalUUID reads a stored nullable uuid back.
func parseOptionalUUID(raw string) *uuid.UUID {
	if raw == "" {
		return nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}

	return &id
}

func mustParseUUID(raw string) uuid.UUID {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}

	return id
}
