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

// promotionRepository implements repository.PromotionRepository on Firestore.
type promotionRepository struct {
	client *firestore.Client
}

// NewPromotionRepository is the constructor for promotionRepository.
func NewPromotionRepository(client *firestore.Client) repository.PromotionRepository {
	return &promotionRepository{client: client}
}

func (repo *promotionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Promotion, error) {
	snap, err := repo.client.Collection(colPromotions).Doc(id.String()).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrPromotionNotFound
		}

		return nil, errors.Wrap(err, "failed to find promotion by id")
	}

	var doc promotionDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode promotion document")
	}

	return toPromotionDomain(&doc), nil
}

func (repo *promotionRepository) FindBySalon(ctx context.Context, salonID uuid.UUID) ([]*entity.Promotion, error) {
	docs, err := collectDocs[promotionDoc](
		repo.client.Collection(colPromotions).Where("salonId", "==", salonID.String()).Documents(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "failed to find promotions by salon")
	}

	promotions := make([]*entity.Promotion, 0, len(docs))
	for _, doc := range docs {
		promotions = append(promotions, toPromotionDomain(doc))
	}
	sort.Slice(promotions, func(i, j int) bool { return promotions[i].StartDate.After(promotions[j].StartDate) })

	return promotions, nil
}

func (repo *promotionRepository) Create(ctx context.Context, promotion *entity.Promotion) error {
	promotion.ID = newDocID(promotion.ID)
	promotion.CreatedAt = time.Now()

	doc := fromPromotionDomain(promotion)
	if _, err := repo.client.Collection(colPromotions).Doc(doc.ID).Create(ctx, doc); err != nil {
		if isAlreadyExists(err) {
			return domainerrors.ErrConflict.WrapMessage("promotion document already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create promotion")
	}

	return nil
}

func (repo *promotionRepository) Update(ctx context.Context, promotion *entity.Promotion) error {
	doc := fromPromotionDomain(promotion)
	if _, err := repo.client.Collection(colPromotions).Doc(doc.ID).Set(ctx, doc); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update promotion")
	}

	return nil
}

func (repo *promotionRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	ref := repo.client.Collection(colPromotions).Doc(id.String())

	if _, err := ref.Get(ctx); err != nil {
		if isNotFound(err) {
			return false, nil
		}

		return false, errors.Wrap(err, "failed to check promotion before delete")
	}

	if _, err := ref.Delete(ctx); err != nil {
		return false, errors.Wrap(err, "failed to delete promotion")
	}

	return true, nil
}

// --- Mapper functions ---

func toPromotionDomain(data *promotionDoc) *entity.Promotion {
	if data == nil {
		return nil
	}

	serviceIDs := make([]uuid.UUID, 0, len(data.ServiceIDs))
	for _, raw := range data.ServiceIDs {
		if id, err := uuid.Parse(raw); err == nil {
			serviceIDs = append(serviceIDs, id)
		}
	}
	if len(serviceIDs) == 0 {
		serviceIDs = nil
	}

	return &entity.Promotion{
		ID:                 mustParseUUID(data.ID),
		SalonID:            mustParseUUID(data.SalonID),
		TitleEn:            data.TitleEn,
		TitleAr:            data.TitleAr,
		DescriptionEn:      data.DescriptionEn,
		DescriptionAr:      data.DescriptionAr,
		DiscountPercentage: data.DiscountPercentage,
		StartDate:          data.StartDate,
		EndDate:            data.EndDate,
		Scope:              entity.PromotionScope(data.Scope),
		ServiceIDs:         serviceIDs,
		CreatedAt:          data.CreatedAt,
	}
}

func fromPromotionDomain(data *entity.Promotion) *promotionDoc {
	if data == nil {
		return nil
	}

	serviceIDs := make([]string, 0, len(data.ServiceIDs))
	for _, id := range data.ServiceIDs {
		serviceIDs = append(serviceIDs, id.String())
	}

	return &promotionDoc{
		ID:                 data.ID.String(),
		SalonID:            data.SalonID.String(),
		TitleEn:            data.TitleEn,
		TitleAr:            data.TitleAr,
		DescriptionEn:      data.DescriptionEn,
		DescriptionAr:      data.DescriptionAr,
		DiscountPercentage: data.DiscountPercentage,
		StartDate:          data.StartDate,
		EndDate:            data.EndDate,
		Scope:              string(data.Scope),
		ServiceIDs:         serviceIDs,
		CreatedAt:          data.CreatedAt,
	}
}
