package firestore

import (
	"context"
	"sort"
	"strings"
	"time"

	"lamsa/internal/domain/entity"
	domainerrors "lamsa/internal/domain/errors"
	"lamsa/internal/domain/repository"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// salonRepository implements repository.SalonRepository on Firestore. Queries
// stick to single-field equality filters so no composite indexes are needed;
// free-text matching, sorting and pagination run client-side over the
// candidate set, the way the legacy document backend worked.
type salonRepository struct {
	client *firestore.Client
	w      writer
}

// NewSalonRepository is the constructor for salonRepository.
func NewSalonRepository(client *firestore.Client) repository.SalonRepository {
	return &salonRepository{client: client}
}

func newTxSalonRepository(client *firestore.Client, tx *firestore.Transaction) repository.SalonRepository {
	return &salonRepository{client: client, w: writer{tx: tx}}
}

func (repo *salonRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Salon, error) {
	snap, err := repo.client.Collection(colSalons).Doc(id.String()).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrSalonNotFound
		}

		return nil, errors.Wrap(err, "failed to find salon by id")
	}

	var doc salonDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode salon document")
	}

	return toSalonDomain(&doc), nil
}

func (repo *salonRepository) List(ctx context.Context, filter repository.SalonFilter) ([]*entity.Salon, error) {
	docs, err := collectDocs[salonDoc](repo.client.Collection(colSalons).Documents(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "failed to list salons")
	}

	salons := filterSalons(docs, filter)
	sort.Slice(salons, func(i, j int) bool { return salons[i].CreatedAt.After(salons[j].CreatedAt) })

	return salons, nil
}

func (repo *salonRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Salon, error) {
	docs, err := collectDocs[salonDoc](
		repo.client.Collection(colSalons).Where("ownerId", "==", ownerID.String()).Documents(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "failed to find salons by owner")
	}

	salons := make([]*entity.Salon, 0, len(docs))
	for _, doc := range docs {
		salons = append(salons, toSalonDomain(doc))
	}
	sort.Slice(salons, func(i, j int) bool { return salons[i].CreatedAt.Before(salons[j].CreatedAt) })

	return salons, nil
}

func (repo *salonRepository) Create(ctx context.Context, salon *entity.Salon) error {
	salon.ID = newDocID(salon.ID)
	salon.Rating = 0
	salon.IsVerified = false
	now := time.Now()
	salon.CreatedAt = now
	salon.UpdatedAt = now

	doc := fromSalonDomain(salon)
	if err := repo.w.create(ctx, repo.client.Collection(colSalons).Doc(doc.ID), doc); err != nil {
		if isAlreadyExists(err) {
			return domainerrors.ErrConflict.WrapMessage("salon document already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create salon")
	}

	return nil
}

func (repo *salonRepository) Update(ctx context.Context, salon *entity.Salon) error {
	salon.UpdatedAt = time.Now()

	doc := fromSalonDomain(salon)
	if err := repo.w.set(ctx, repo.client.Collection(colSalons).Doc(doc.ID), doc); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update salon")
	}

	return nil
}

// RecalculateRating averages the salon's review ratings at full float
// precision, the document backend's contract, and writes it back.
func (repo *salonRepository) RecalculateRating(ctx context.Context, salonID uuid.UUID) (float64, error) {
	docs, err := collectDocs[reviewDoc](
		repo.client.Collection(colReviews).Where("salonId", "==", salonID.String()).Documents(ctx))
	if err != nil {
		return 0, errors.Wrap(err, "failed to load salon reviews")
	}

	var rating float64
	if len(docs) > 0 {
		var sum int
		for _, doc := range docs {
			sum += doc.Rating
		}
		rating = float64(sum) / float64(len(docs))
	}

	err = repo.w.update(ctx, repo.client.Collection(colSalons).Doc(salonID.String()), []firestore.Update{
		{Path: "rating", Value: rating},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if isNotFound(err) {
			return 0, repository.ErrSalonNotFound
		}

		return 0, errors.Wrap(err, "failed to persist salon rating")
	}

	return rating, nil
}

func (repo *salonRepository) Search(ctx context.Context, params repository.SalonSearchParams) (*repository.SalonSearchResult, error) {
	docs, err := collectDocs[salonDoc](repo.client.Collection(colSalons).Documents(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "failed to search salons")
	}

	salons := filterSalons(docs, params.Filter)

	if q := strings.TrimSpace(params.Query); q != "" {
		needle := strings.ToLower(q)
		matched := salons[:0]
		for _, salon := range salons {
			if salonMatchesQuery(salon, needle) {
				matched = append(matched, salon)
			}
		}
		salons = matched
	}

	sortSalons(salons, params.SortBy, params.SortOrder)

	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit < 1 {
		limit = 20
	}

	total := len(salons)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return &repository.SalonSearchResult{
		Salons: salons[start:end],
		Total:  total,
		Page:   page,
		Limit:  limit,
	}, nil
}

func filterSalons(docs []*salonDoc, filter repository.SalonFilter) []*entity.Salon {
	var allowed map[string]struct{}
	if filter.IDs != nil {
		allowed = make(map[string]struct{}, len(filter.IDs))
		for _, id := range filter.IDs {
			allowed[id.String()] = struct{}{}
		}
	}

	salons := make([]*entity.Salon, 0, len(docs))
	for _, doc := range docs {
		if allowed != nil {
			if _, ok := allowed[doc.ID]; !ok {
				continue
			}
		}
		if filter.IsLadiesOnly != nil && doc.IsLadiesOnly != *filter.IsLadiesOnly {
			continue
		}
		if filter.HasPrivateRooms != nil && doc.HasPrivateRooms != *filter.HasPrivateRooms {
			continue
		}
		if filter.IsHijabFriendly != nil && doc.IsHijabFriendly != *filter.IsHijabFriendly {
			continue
		}
		if filter.City != "" && doc.City != filter.City {
			continue
		}
		salons = append(salons, toSalonDomain(doc))
	}

	return salons
}

func salonMatchesQuery(salon *entity.Salon, needle string) bool {
	return strings.Contains(strings.ToLower(salon.NameEn), needle) ||
		strings.Contains(salon.NameAr, needle) ||
		strings.Contains(strings.ToLower(salon.DescriptionEn), needle) ||
		strings.Contains(salon.DescriptionAr, needle)
}

func sortSalons(salons []*entity.Salon, sortBy, sortOrder string) {
	var less func(i, j int) bool
	switch sortBy {
	case "name":
		less = func(i, j int) bool { return salons[i].NameEn < salons[j].NameEn }
	case "createdAt":
		less = func(i, j int) bool { return salons[i].CreatedAt.Before(salons[j].CreatedAt) }
	default:
		less = func(i, j int) bool { return salons[i].Rating < salons[j].Rating }
	}

	// Descending unless asked otherwise, mirroring the relational adapter.
	if !strings.EqualFold(sortOrder, "asc") {
		inner := less
		less = func(i, j int) bool { return inner(j, i) }
	}

	sort.SliceStable(salons, less)
}

// --- Mapper functions ---

func toSalonDomain(data *salonDoc) *entity.Salon {
	if data == nil {
		return nil
	}

	return &entity.Salon{
		ID:              mustParseUUID(data.ID),
		OwnerID:         mustParseUUID(data.OwnerID),
		NameEn:          data.NameEn,
		NameAr:          data.NameAr,
		DescriptionEn:   data.DescriptionEn,
		DescriptionAr:   data.DescriptionAr,
		Address:         data.Address,
		City:            data.City,
		Phone:           data.Phone,
		Email:           data.Email,
		Rating:          data.Rating,
		ImageURL:        data.ImageURL,
		IsVerified:      data.IsVerified,
		IsLadiesOnly:    data.IsLadiesOnly,
		HasPrivateRooms: data.HasPrivateRooms,
		IsHijabFriendly: data.IsHijabFriendly,
		PriceRange:      data.PriceRange,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func fromSalonDomain(data *entity.Salon) *salonDoc {
	if data == nil {
		return nil
	}

	return &salonDoc{
		ID:              data.ID.String(),
		OwnerID:         data.OwnerID.String(),
		NameEn:          data.NameEn,
		NameAr:          data.NameAr,
		DescriptionEn:   data.DescriptionEn,
		DescriptionAr:   data.DescriptionAr,
		Address:         data.Address,
		City:            data.City,
		Phone:           data.Phone,
		Email:           data.Email,
		Rating:          data.Rating,
		ImageURL:        data.ImageURL,
		IsVerified:      data.IsVerified,
		IsLadiesOnly:    data.IsLadiesOnly,
		HasPrivateRooms: data.HasPrivateRooms,
		IsHijabFriendly: data.IsHijabFriendly,
		PriceRange:      data.PriceRange,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}
