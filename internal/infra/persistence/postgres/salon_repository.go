package postgres

import (
	"context"
	"strings"

	"lamsa/internal/domain/entity"
	domainerrors "lamsa/internal/domain/errors"
	"lamsa/internal/domain/repository"
	"lamsa/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// salonRepository implements repository.SalonRepository using GORM.
type salonRepository struct {
	db *gorm.DB
}

// NewSalonRepository is the constructor for salonRepository.
func NewSalonRepository(db *gorm.DB) repository.SalonRepository {
	return &salonRepository{db: db}
}

// FindByID retrieves a single salon by its unique ID.
func (repo *salonRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Salon, error) {
	var salonM model.SalonModel

	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&salonM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSalonNotFound
		}

		return nil, errors.Wrap(err, "failed to find salon by id")
	}

	return toSalonDomain(&salonM), nil
}

// List retrieves salons matching the filter. Present filters are ANDed,
// absent ones ignored.
func (repo *salonRepository) List(ctx context.Context, filter repository.SalonFilter) ([]*entity.Salon, error) {
	query := applySalonFilter(repo.db.WithContext(ctx), filter)

	var salonModels []*model.SalonModel
	if err := query.Order("created_at DESC").Find(&salonModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list salons")
	}

	return toSalonDomainSlice(salonModels), nil
}

// FindByOwner retrieves all salons owned by the given user.
func (repo *salonRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Salon, error) {
	var salonModels []*model.SalonModel

	if err := repo.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at").
		Find(&salonModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find salons by owner")
	}

	return toSalonDomainSlice(salonModels), nil
}

// Create persists a new salon. Creation defaults (zero rating, unverified)
// are applied here so both adapters agree.
func (repo *salonRepository) Create(ctx context.Context, salon *entity.Salon) error {
	salon.Rating = 0
	salon.IsVerified = false

	salonM := fromSalonDomain(salon)

	if err := repo.db.WithContext(ctx).Create(salonM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("salon owner does not exist")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required salon information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create salon")
	}

	salon.ID = salonM.ID
	salon.CreatedAt = salonM.CreatedAt
	salon.UpdatedAt = salonM.UpdatedAt

	return nil
}

// Update modifies an existing salon.
func (repo *salonRepository) Update(ctx context.Context, salon *entity.Salon) error {
	salonM := fromSalonDomain(salon)

	if err := repo.db.WithContext(ctx).Save(salonM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update salon")
	}

	salon.UpdatedAt = salonM.UpdatedAt

	return nil
}

// RecalculateRating recomputes the salon's derived rating as the mean of its
// review ratings rounded to one decimal, the relational backend's contract.
// A salon with no reviews goes back to zero.
func (repo *salonRepository) RecalculateRating(ctx context.Context, salonID uuid.UUID) (float64, error) {
	var rating float64

	err := repo.db.WithContext(ctx).
		Raw("SELECT COALESCE(ROUND(AVG(rating)::numeric, 1), 0) FROM reviews WHERE salon_id = ?", salonID).
		Scan(&rating).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to average reviews")
	}

	result := repo.db.WithContext(ctx).
		Model(&model.SalonModel{}).
		Where("id = ?", salonID).
		Update("rating", rating)
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to persist salon rating")
	}
	if result.RowsAffected == 0 {
		return 0, repository.ErrSalonNotFound
	}

	return rating, nil
}

// Search performs free-text matching over the bilingual names plus filter
// flags, with sorting and pagination.
func (repo *salonRepository) Search(ctx context.Context, params repository.SalonSearchParams) (*repository.SalonSearchResult, error) {
	query := applySalonFilter(repo.db.WithContext(ctx).Model(&model.SalonModel{}), params.Filter)

	if q := strings.TrimSpace(params.Query); q != "" {
		like := "%" + q + "%"
		query = query.Where(
			"name_en ILIKE ? OR name_ar ILIKE ? OR description_en ILIKE ? OR description_ar ILIKE ?",
			like, like, like, like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count search results")
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit < 1 {
		limit = 20
	}

	var salonModels []*model.SalonModel
	if err := query.
		Order(salonSearchOrder(params.SortBy, params.SortOrder)).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&salonModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to search salons")
	}

	return &repository.SalonSearchResult{
		Salons: toSalonDomainSlice(salonModels),
		Total:  int(total),
		Page:   page,
		Limit:  limit,
	}, nil
}

func applySalonFilter(query *gorm.DB, filter repository.SalonFilter) *gorm.DB {
	if filter.IsLadiesOnly != nil {
		query = query.Where("is_ladies_only = ?", *filter.IsLadiesOnly)
	}
	if filter.HasPrivateRooms != nil {
		query = query.Where("has_private_rooms = ?", *filter.HasPrivateRooms)
	}
	if filter.IsHijabFriendly != nil {
		query = query.Where("is_hijab_friendly = ?", *filter.IsHijabFriendly)
	}
	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}
	if filter.IDs != nil {
		query = query.Where("id IN ?", filter.IDs)
	}

	return query
}

func salonSearchOrder(sortBy, sortOrder string) string {
	column := "rating"
	switch sortBy {
	case "name":
		column = "name_en"
	case "createdAt":
		column = "created_at"
	}

	direction := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		direction = "ASC"
	}

	return column + " " + direction
}

// --- Mapper functions ---

func toSalonDomain(data *model.SalonModel) *entity.Salon {
	if data == nil {
		return nil
	}

	return &entity.Salon{
		ID:              data.ID,
		OwnerID:         data.OwnerID,
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

func fromSalonDomain(data *entity.Salon) *model.SalonModel {
	if data == nil {
		return nil
	}

	return &model.SalonModel{
		ID:              data.ID,
		OwnerID:         data.OwnerID,
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

func toSalonDomainSlice(models []*model.SalonModel) []*entity.Salon {
	salons := make([]*entity.Salon, 0, len(models))
	for _, salonM := range models {
		salons = append(salons, toSalonDomain(salonM))
	}

	return salons
}
