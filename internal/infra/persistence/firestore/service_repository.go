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

// serviceRepository implements repository.ServiceRepository on Firestore.
type serviceRepository struct {
	client *firestore.Client
}

// NewServiceRepository is the constructor for serviceRepository.
func NewServiceRepository(client *firestore.Client) repository.ServiceRepository {
	return &serviceRepository{client: client}
}

func (repo *serviceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	snap, err := repo.client.Collection(colServices).Doc(id.String()).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrServiceNotFound
		}

		return nil, errors.Wrap(err, "failed to find service by id")
	}

	var doc serviceDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode service document")
	}

	return toServiceDomain(&doc), nil
}

func (repo *serviceRepository) FindBySalon(ctx context.Context, salonID uuid.UUID) ([]*entity.Service, error) {
	docs, err := collectDocs[serviceDoc](
		repo.client.Collection(colServices).Where("salonId", "==", salonID.String()).Documents(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "failed to find services by salon")
	}

	return sortedServices(docs), nil
}

func (repo *serviceRepository) List(ctx context.Context) ([]*entity.Service, error) {
	docs, err := collectDocs[serviceDoc](repo.client.Collection(colServices).Documents(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "failed to list services")
	}

	return sortedServices(docs), nil
}

func (repo *serviceRepository) Create(ctx context.Context, service *entity.Service) error {
	service.ID = newDocID(service.ID)
	now := time.Now()
	service.CreatedAt = now
	service.UpdatedAt = now

	doc := fromServiceDomain(service)
	if _, err := repo.client.Collection(colServices).Doc(doc.ID).Create(ctx, doc); err != nil {
		if isAlreadyExists(err) {
			return domainerrors.ErrConflict.WrapMessage("service document already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create service")
	}

	return nil
}

func (repo *serviceRepository) Update(ctx context.Context, service *entity.Service) error {
	service.UpdatedAt = time.Now()

	doc := fromServiceDomain(service)
	if _, err := repo.client.Collection(colServices).Doc(doc.ID).Set(ctx, doc); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update service")
	}

	return nil
}

func (repo *serviceRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	ref := repo.client.Collection(colServices).Doc(id.String())

	// Delete never reports missing documents, so probe first.
	if _, err := ref.Get(ctx); err != nil {
		if isNotFound(err) {
			return false, nil
		}

		return false, errors.Wrap(err, "failed to check service before delete")
	}

	if _, err := ref.Delete(ctx); err != nil {
		return false, errors.Wrap(err, "failed to delete service")
	}

	return true, nil
}

func sortedServices(docs []*serviceDoc) []*entity.Service {
	services := make([]*entity.Service, 0, len(docs))
	for _, doc := range docs {
		services = append(services, toServiceDomain(doc))
	}
	sort.Slice(services, func(i, j int) bool { return services[i].CreatedAt.Before(services[j].CreatedAt) })

	return services
}

// --- Mapper functions ---

func toServiceDomain(data *serviceDoc) *entity.Service {
	if data == nil {
		return nil
	}

	return &entity.Service{
		ID:              mustParseUUID(data.ID),
		SalonID:         mustParseUUID(data.SalonID),
		NameEn:          data.NameEn,
		NameAr:          data.NameAr,
		DescriptionEn:   data.DescriptionEn,
		DescriptionAr:   data.DescriptionAr,
		DurationMinutes: data.DurationMinutes,
		Price:           data.Price,
		Category:        data.Category,
		ImageURL:        data.ImageURL,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func fromServiceDomain(data *entity.Service) *serviceDoc {
	if data == nil {
		return nil
	}

	return &serviceDoc{
		ID:              data.ID.String(),
		SalonID:         data.SalonID.String(),
		NameEn:          data.NameEn,
		NameAr:          data.NameAr,
		DescriptionEn:   data.DescriptionEn,
		DescriptionAr:   data.DescriptionAr,
		DurationMinutes: data.DurationMinutes,
		Price:           data.Price,
		Category:        data.Category,
		ImageURL:        data.ImageURL,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}
