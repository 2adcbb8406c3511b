package repository

import (
	"context"
	"regexp"
	"testing"

	"inkwell/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestProfileRepository_CreateForAuthor(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	profile := &models.Profile{Username: "jdoe", Email: "jdoe@example.com"}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "profiles"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.CreateForAuthor(ctx, 5, profile)
	assert.NoError(t, err)
	assert.Equal(t, uint(5), profile.AuthorID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_GetByAuthorID(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewProfileRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "profiles" WHERE author_id = $1`)).
			WithArgs(5, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "author_id"}).
				AddRow(1, "jdoe", 5))

		profile, err := repo.GetByAuthorID(ctx, 5)
		assert.NoError(t, err)
		if assert.NotNil(t, profile) {
			assert.Equal(t, "jdoe", profile.Username)
		}
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("None Is Not An Error", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewProfileRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "profiles" WHERE author_id = $1`)).
			WithArgs(6, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "author_id"}))

		profile, err := repo.GetByAuthorID(ctx, 6)
		assert.NoError(t, err)
		assert.Nil(t, profile)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
