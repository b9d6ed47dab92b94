package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/feedback-ldrp/reflectify-backend/internal/repository"
	"github.com/feedback-ldrp/reflectify-backend/internal/repository/models"
)

func TestSnapshotRepository_QueryErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("ListSnapshots surfaces query failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection reset"))

		repo := repository.NewSnapshotRepository(db)
		_, err = repo.ListSnapshots(ctx, models.Filter{})

		require.Error(t, err)
		require.Contains(t, err.Error(), "query ListSnapshots")
		require.Contains(t, err.Error(), "connection reset")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ListSnapshots surfaces row iteration failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows([]string{"id"}).
			AddRow("resp-1").
			RowError(0, errors.New("broken pipe"))
		mock.ExpectQuery("SELECT").WillReturnRows(rows)

		repo := repository.NewSnapshotRepository(db)
		_, err = repo.ListSnapshots(ctx, models.Filter{})

		require.Error(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetSubject surfaces query failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT").WillReturnError(errors.New("disk I/O error"))

		repo := repository.NewSnapshotRepository(db)
		_, err = repo.GetSubject(ctx, "sub-1")

		require.Error(t, err)
		require.Contains(t, err.Error(), "query GetSubject")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
