package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/MarufHossain14/clubops-crm/internal/domain"
)

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`INSERT INTO users \(email, name, password_hash, password_salt\)`).
			WithArgs("ana@example.com", "Ana", "hash", "salt").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, createdAt))

		repo := NewUserRepository(db)
		user := &domain.User{Email: "ana@example.com", Name: "Ana", PasswordHash: "hash", PasswordSalt: "salt"}
		require.NoError(t, repo.Create(ctx, user))
		require.Equal(t, 1, user.ID)
		require.Equal(t, createdAt, user.CreatedAt)
	})

	t.Run("duplicate email", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`INSERT INTO users`).
			WillReturnError(&pq.Error{Code: "23505"})

		repo := NewUserRepository(db)
		err = repo.Create(ctx, &domain.User{Email: "ana@example.com"})
		require.ErrorIs(t, err, domain.ErrDuplicateEmail)
	})
}

func TestUserRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, email, name, password_hash, password_salt, created_at`).
			WithArgs("ana@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "password_hash", "password_salt", "created_at"}).
				AddRow(1, "ana@example.com", "Ana", "hash", "salt", time.Now()))

		repo := NewUserRepository(db)
		user, err := repo.GetByEmail(ctx, "ana@example.com")
		require.NoError(t, err)
		require.Equal(t, "Ana", user.Name)
		require.Equal(t, "hash", user.PasswordHash)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, email`).
			WithArgs("missing@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "password_hash", "password_salt", "created_at"}))

		repo := NewUserRepository(db)
		_, err = repo.GetByEmail(ctx, "missing@example.com")
		require.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}
