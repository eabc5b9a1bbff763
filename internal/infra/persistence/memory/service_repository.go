package memory

import (
	"context"
	"sort"
	"time"

	"lamsa/internal/domain/entity"
	"lamsa/internal/domain/repository"

	"github.com/google/uuid"
)

type serviceRepository struct {
	store *Store
}

// NewServiceRepository is the constructor for serviceRepository.
func NewServiceRepository(store *Store) repository.ServiceRepository {
	return &serviceRepository{store: store}
}

func (repo *serviceRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Service, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	service, ok := repo.store.services[id]
	if !ok {
		return nil, repository.ErrServiceNotFound
	}

	return &service, nil
}

func (repo *serviceRepository) FindBySalon(_ context.Context, salonID uuid.UUID) ([]*entity.Service, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	var services []*entity.Service
	for _, service := range repo.store.services {
		if service.SalonID == salonID {
			s := service
			services = append(services, &s)
		}
	}
	sort.Slice(services, func(i, j int) bool { return services[i].CreatedAt.Before(services[j].CreatedAt) })

	return services, nil
}

func (repo *serviceRepository) List(_ context.Context) ([]*entity.Service, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	services := make([]*entity.Service, 0, len(repo.store.services))
	for _, service := range repo.store.services {
		s := service
		services = append(services, &s)
	}
	sort.Slice(services, func(i, j int) bool { return services[i].CreatedAt.Before(services[j].CreatedAt) })

	return services, nil
}

func (repo *serviceRepository) Create(_ context.Context, service *entity.Service) error {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	service.ID = ensureID(service.ID)
	service.CreatedAt = nowOr(service.CreatedAt)
	service.UpdatedAt = service.CreatedAt

	repo.store.services[service.ID] = *service

	return nil
}

func (repo *serviceRepository) Update(_ context.Context, service *entity.Service) error {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	if _, ok := repo.store.services[service.ID]; !ok {
		return repository.ErrServiceNotFound
	}

	service.UpdatedAt = time.Now()
	repo.store.services[service.ID] = *service

	return nil
}

func (repo *serviceRepository) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	if _, ok := repo.store.services[id]; !ok {
		return false, nil
	}

	delete(repo.store.services, id)

	return true, nil
}
