package firestore

import (
	"context"
	"sort"
	"time"

	"lamsa/internal/domain/entity"
	domainerrors "lamsa/internal/domain/errors"
	"lamsa/internal/domain/repository"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// reviewRepository implements repository.ReviewRepository on Firestore.
type reviewRepository struct {
	client *firestore.Client
	w      writer
}

// NewReviewRepository is the constructor for reviewRepository.
func NewReviewRepository(client *firestore.Client) repository.ReviewRepository {
	return &reviewRepository{client: client}
}

func newTxReviewRepository(client *firestore.Client, tx *firestore.Transaction) repository.ReviewRepository {
	return &reviewRepository{client: client, w: writer{tx: tx}}
}

func (repo *reviewRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error) {
	docs, err := collectDocs[reviewDoc](
		repo.client.Collection(colReviews).Where("userId", "==", userID.String()).Documents(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "failed to find reviews by user")
	}

	return sortedReviewsNewestFirst(docs), nil
}

func (repo *reviewRepository) FindBySalon(ctx context.Context, salonID uuid.UUID) ([]*entity.Review, error) {
	docs, err := collectDocs[reviewDoc](
		repo.client.Collection(colReviews).Where("salonId", "==", salonID.String()).Documents(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "failed to find reviews by salon")
	}

	return sortedReviewsNewestFirst(docs), nil
}

func (repo *reviewRepository) List(ctx context.Context) ([]*entity.Review, error) {
	docs, err := collectDocs[reviewDoc](repo.client.Collection(colReviews).Documents(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	return sortedReviewsNewestFirst(docs), nil
}

func (repo *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	review.ID = newDocID(review.ID)
	review.CreatedAt = time.Now()

	doc := fromReviewDomain(review)
	if err := repo.w.create(ctx, repo.client.Collection(colReviews).Doc(doc.ID), doc); err != nil {
		if isAlreadyExists(err) {
			return domainerrors.ErrConflict.WrapMessage("review document already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create review")
	}

	return nil
}

func sortedReviewsNewestFirst(docs []*reviewDoc) []*entity.Review {
	reviews := make([]*entity.Review, 0, len(docs))
	for _, doc := range docs {
		reviews = append(reviews, toReviewDomain(doc))
	}
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].CreatedAt.After(reviews[j].CreatedAt) })

	return reviews
}

// --- Mapper functions ---

func toReviewDomain(data *reviewDoc) *entity.Review {
	if data == nil {
		return nil
	}

	return &entity.Review{
		ID:        mustParseUUID(data.ID),
		UserID:    mustParseUUID(data.UserID),
		SalonID:   mustParseUUID(data.SalonID),
		ServiceID: parseOptionalUUID(data.ServiceID),
		BookingID: parseOptionalUUID(data.BookingID),
		Rating:    data.Rating,
		Comment:   data.Comment,
		CreatedAt: data.CreatedAt,
	}
}

func fromReviewDomain(data *entity.Review) *reviewDoc {
	if data == nil {
		return nil
	}

	return &reviewDoc{
		ID:        data.ID.String(),
		UserID:    data.UserID.String(),
		SalonID:   data.SalonID.String(),
		ServiceID: optionalUUIDString(data.ServiceID),
		BookingID: optionalUUIDString(data.BookingID),
		Rating:    data.Rating,
		Comment:   data.Comment,
		CreatedAt: data.CreatedAt,
	}
}
