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

// userRepository implements repository.UserRepository on Firestore. The store
// cannot enforce unique usernames or emails, so Create checks with equality
// queries first; a race between two registrations is accepted, matching the
// legacy document backend.
type userRepository struct {
	client *firestore.Client
	w      writer
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(client *firestore.Client) repository.UserRepository {
	return &userRepository{client: client}
}

func newTxUserRepository(client *firestore.Client, tx *firestore.Transaction) repository.UserRepository {
	return &userRepository{client: client, w: writer{tx: tx}}
}

func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	snap, err := repo.client.Collection(colUsers).Doc(id.String()).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	var doc userDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode user document")
	}

	return toUserDomain(&doc), nil
}

func (repo *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return repo.findOneBy(ctx, "username", username)
}

func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return repo.findOneBy(ctx, "email", email)
}

func (repo *userRepository) findOneBy(ctx context.Context, field, value string) (*entity.User, error) {
	docs, err := collectDocs[userDoc](
		repo.client.Collection(colUsers).Where(field, "==", value).Limit(1).Documents(ctx))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to find user by %s", field)
	}
	if len(docs) == 0 {
		return nil, repository.ErrUserNotFound
	}

	return toUserDomain(docs[0]), nil
}

func (repo *userRepository) List(ctx context.Context) ([]*entity.User, error) {
	docs, err := collectDocs[userDoc](repo.client.Collection(colUsers).Documents(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	users := make([]*entity.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, toUserDomain(doc))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })

	return users, nil
}

func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	if user.Role == "" {
		user.Role = entity.RoleCustomer
	}
	if user.PreferredLanguage == "" {
		user.PreferredLanguage = entity.LanguageEnglish
	}

	if _, err := repo.FindByUsername(ctx, user.Username); err == nil {
		return domainerrors.ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return err
	}
	if _, err := repo.FindByEmail(ctx, user.Email); err == nil {
		return domainerrors.ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return err
	}

	user.ID = newDocID(user.ID)
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	doc := fromUserDomain(user)
	if err := repo.w.create(ctx, repo.client.Collection(colUsers).Doc(doc.ID), doc); err != nil {
		if isAlreadyExists(err) {
			return domainerrors.ErrConflict.WrapMessage("user document already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	return nil
}

func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	user.UpdatedAt = time.Now()

	doc := fromUserDomain(user)
	if err := repo.w.set(ctx, repo.client.Collection(colUsers).Doc(doc.ID), doc); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update user")
	}

	return nil
}

// AddLoyaltyPoints increments the balance with a field transform so two
// concurrent accruals never lose an update.
func (repo *userRepository) AddLoyaltyPoints(ctx context.Context, id uuid.UUID, points int) error {
	err := repo.w.update(ctx, repo.client.Collection(colUsers).Doc(id.String()), []firestore.Update{
		{Path: "loyaltyPoints", Value: firestore.Increment(points)},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if isNotFound(err) {
			return repository.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to add loyalty points")
	}

	return nil
}

// --- Mapper functions ---

func toUserDomain(data *userDoc) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:                mustParseUUID(data.ID),
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

func fromUserDomain(data *entity.User) *userDoc {
	if data == nil {
		return nil
	}

	return &userDoc{
		ID:                data.ID.String(),
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
