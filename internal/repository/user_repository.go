package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cyberfanta/shopping-exercise/internal/db"
	"github.com/cyberfanta/shopping-exercise/internal/domain"
	"github.com/cyberfanta/shopping-exercise/internal/port"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewUser(pool *pgxpool.Pool) port.UserRepository {
	return &userRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewUserWithTx(tx pgx.Tx) port.UserRepository {
	return &userRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *userRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	if user.Email == "" {
		return domain.User{}, fmt.Errorf("email is empty")
	}

	row, err := r.q.CreateUser(ctx, db.CreateUserParams{
		Email:        normalizeEmail(user.Email),
		PasswordHash: user.PasswordHash,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Phone:        user.Phone,
	})
	if isUniqueViolation(err) {
		return domain.User{}, domain.ErrEmailTaken
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("q.CreateUser: %w", err)
	}

	return mapUserToDomain(row), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	row, err := r.q.GetUserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("q.GetUserByEmail: %w", err)
	}

	return mapUserToDomain(row), nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	row, err := r.q.GetUserByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("q.GetUserByID: %w", err)
	}

	return mapUserToDomain(row), nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id uuid.UUID, patch domain.ProfilePatch) (domain.User, error) {
	if patch.Empty() {
		return domain.User{}, domain.ErrNoFieldsToUpdate
	}

	row, err := r.q.UpdateUserProfile(ctx, db.UpdateUserProfileParams{
		FirstName: patch.FirstName,
		LastName:  patch.LastName,
		Phone:     patch.Phone,
		ID:        id,
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("q.UpdateUserProfile: %w", err)
	}

	return mapUserToDomain(row), nil
}

func (r *userRepository) Update(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (domain.User, error) {
	if patch.Empty() {
		return domain.User{}, domain.ErrNoFieldsToUpdate
	}

	var role *string
	if patch.Role != nil {
		value := string(*patch.Role)
		role = &value
	}

	row, err := r.q.AdminUpdateUser(ctx, db.AdminUpdateUserParams{
		FirstName: patch.FirstName,
		LastName:  patch.LastName,
		Phone:     patch.Phone,
		Role:      role,
		IsActive:  patch.IsActive,
		ID:        id,
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("q.AdminUpdateUser: %w", err)
	}

	return mapUserToDomain(row), nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	err := r.q.UpdateUserPassword(ctx, db.UpdateUserPasswordParams{
		ID:           id,
		PasswordHash: passwordHash,
	})
	if err != nil {
		return fmt.Errorf("q.UpdateUserPassword: %w", err)
	}
	return nil
}

func (r *userRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	rowsAffected, err := r.q.DeactivateUser(ctx, id)
	if err != nil {
		return fmt.Errorf("q.DeactivateUser: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) List(ctx context.Context, filter domain.UserFilter) ([]domain.User, int64, error) {
	var role *string
	if filter.Role != nil {
		value := string(*filter.Role)
		role = &value
	}

	rows, err := r.q.ListUsers(ctx, db.ListUsersParams{
		Role:   role,
		Search: filter.Search,
		Lim:    int32(filter.Page.Limit),
		Off:    int32(filter.Page.Offset()),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("q.ListUsers: %w", err)
	}

	total, err := r.q.CountUsers(ctx, db.CountUsersParams{
		Role:   role,
		Search: filter.Search,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("q.CountUsers: %w", err)
	}

	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, mapUserToDomain(row))
	}

	return users, total, nil
}

func (r *userRepository) CreateResetToken(ctx context.Context, token domain.ResetToken) error {
	err := r.q.CreatePasswordResetToken(ctx, db.CreatePasswordResetTokenParams{
		UserID:    token.UserID,
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("q.CreatePasswordResetToken: %w", err)
	}
	return nil
}

func (r *userRepository) ConsumeResetToken(ctx context.Context, token string) (uuid.UUID, error) {
	return withTx(ctx, r.pool, r.q, func(q *db.Queries) (uuid.UUID, error) {
		userID, err := q.GetValidPasswordResetToken(ctx, token)
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, domain.ErrInvalidToken
		}
		if err != nil {
			return uuid.Nil, fmt.Errorf("q.GetValidPasswordResetToken: %w", err)
		}

		if err := q.MarkPasswordResetTokenUsed(ctx, token); err != nil {
			return uuid.Nil, fmt.Errorf("q.MarkPasswordResetTokenUsed: %w", err)
		}

		return userID, nil
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func mapUserToDomain(row db.User) domain.User {
	return domain.User{
		ID:           row.ID,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		FirstName:    row.FirstName,
		LastName:     row.LastName,
		Phone:        row.Phone,
		Role:         domain.Role(row.Role),
		IsActive:     row.IsActive,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
