package postgres

import (
	"context"

	"lamsa/internal/domain/entity"
	domainerrors "lamsa/internal/domain/errors"
	"lamsa/internal/domain/repository"
	"lamsa/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements repository.UserRepository using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// FindByUsername retrieves a single user by their unique username.
func (repo *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).Where("username = ?", username).First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by username")
	}

	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).Where("email = ?", email).First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// List retrieves every user.
func (repo *userRepository) List(ctx context.Context) ([]*entity.User, error) {
	var userModels []*model.UserModel

	if err := repo.db.WithContext(ctx).Order("created_at").Find(&userModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	users := make([]*entity.User, 0, len(userModels))
	for _, userM := range userModels {
		users = append(users, toUserDomain(userM))
	}

	return users, nil
}

// Create persists a new user. Registration defaults (customer role, zero
// loyalty points, English language) are applied here so both adapters agree.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	if user.Role == "" {
		user.Role = entity.RoleCustomer
	}
	if user.PreferredLanguage == "" {
		user.PreferredLanguage = entity.LanguageEnglish
	}

	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailTaken.WrapMessage("username or email already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required user information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// Update modifies an existing user.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Save(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailTaken.WrapMessage("username or email already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update user")
	}

	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// AddLoyaltyPoints atomically increments the user's loyalty balance.
func (repo *userRepository) AddLoyaltyPoints(ctx context.Context, id uuid.UUID, points int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Update("loyalty_points", gorm.Expr("loyalty_points + ?", points))

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to add loyalty points")
	}

	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// --- Mapper functions ---

func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:                data.ID,
		Username:          data.Username,
		Email:             data.Email,
		PasswordHash:      data.PasswordHash,
		FullName:          data.FullName,
		Phone:             data.Phone,
		Role:              entity.Role(data.Role),
		LoyaltyPoints:     data.LoyaltyPoints,
		PreferredLanguage: entity.Language(data.PreferredLanguage),
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}
}

func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:                data.ID,
		Username:          data.Username,
		Email:             data.Email,
		PasswordHash:      data.PasswordHash,
		FullName:          data.FullName,
		Phone:             data.Phone,
		Role:              string(data.Role),
		LoyaltyPoints:     data.LoyaltyPoints,
		PreferredLanguage: string(data.PreferredLanguage),
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}
}
