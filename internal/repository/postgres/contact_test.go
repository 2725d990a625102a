package postgres

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/somtoval/foretrust-api/internal/apperrors"
	"github.com/somtoval/foretrust-api/internal/models"
	"github.com/somtoval/foretrust-api/internal/repository"
	"github.com/somtoval/foretrust-api/internal/testutil"
)

func Test_ContactRepo(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	withTx := func(t *testing.T, fn func(r *ContactRepo)) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			fn(&ContactRepo{DB: tx})
		})
	}

	someContact := repository.CreateContactParams{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Message:   "please call me back",
	}

	t.Run("Create", func(t *testing.T) {
		withTx(t, func(r *ContactRepo) {
			contact, err := r.Create(t.Context(), someContact)

			require.NoError(t, err)
			require.NotEqual(t, uuid.Nil, contact.ID, "id should be generated")
			require.False(t, contact.CreatedAt.IsZero(), "created_at should be set by db")
			require.Equal(t, "Ada", contact.FirstName)
			require.Equal(t, "Lovelace", contact.LastName)
			require.Equal(t, "ada@example.com", contact.Email)
			require.Equal(t, "please call me back", contact.Message)
		})
	})

	t.Run("Get", func(t *testing.T) {
		t.Run("get ok", func(t *testing.T) {
			withTx(t, func(r *ContactRepo) {
				created, err := r.Create(t.Context(), someContact)
				require.NoError(t, err)

				contact, err := r.Get(t.Context(), created.ID)

				require.NoError(t, err)
				require.Equal(t, created, contact)
			})
		})

		t.Run("fail if not found", func(t *testing.T) {
			withTx(t, func(r *ContactRepo) {
				_, err := r.Get(t.Context(), uuid.New())

				require.Error(t, err)
				require.ErrorIs(t, err, apperrors.ErrContactNotFound)
			})
		})
	})

	t.Run("List", func(t *testing.T) {
		withTx(t, func(r *ContactRepo) {
			first, err := r.Create(t.Context(), someContact)
			require.NoError(t, err)

			second, err := r.Create(t.Context(), repository.CreateContactParams{
				FirstName: "Grace",
				LastName:  "Hopper",
				Email:     "grace@example.com",
				Message:   "found a bug",
			})
			require.NoError(t, err)

			list, err := r.List(t.Context())

			require.NoError(t, err)
			require.ElementsMatch(t, []models.Contact{first, second}, list)
		})
	})

	t.Run("Delete", func(t *testing.T) {
		t.Run("delete ok", func(t *testing.T) {
			withTx(t, func(r *ContactRepo) {
				created, err := r.Create(t.Context(), someContact)
				require.NoError(t, err)

				err = r.Delete(t.Context(), created.ID)
				require.NoError(t, err)

				_, err = r.Get(t.Context(), created.ID)
				require.ErrorIs(t, err, apperrors.ErrContactNotFound)
			})
		})

		t.Run("fail if not found", func(t *testing.T) {
			withTx(t, func(r *ContactRepo) {
				err := r.Delete(t.Context(), uuid.New())

				require.Error(t, err)
				require.ErrorIs(t, err, apperrors.ErrContactNotFound)
			})
		})
	})
}
