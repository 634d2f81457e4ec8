package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venturescout/dealflow/internal/model"
)

func int64Ptr(v int64) *int64 { return &v }

func float64Ptr(v float64) *float64 { return &v }

func TestUpsertSubmissionWritesFullGraph(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewStoreWithPool(mock)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO submissions").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectExec("DELETE FROM profiles").
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec("DELETE FROM site_facts").
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec("INSERT INTO profiles").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO site_facts").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	ctx := context.Background()
	tx, err := store.Begin(ctx)
	require.NoError(t, err)

	sub := &model.Submission{
		SubmissionID:      "resp-1",
		FounderName:       "Ada Lovelace",
		FounderEmail:      "ada@analytical.io",
		LinkedInURL:       "https://linkedin.com/in/ada",
		Website:           "https://analytical.io",
		FounderExperience: []string{"Founded before"},
		ActiveUsers:       int64Ptr(30000),
		MRR:               float64Ptr(1250.5),
		RawResponse:       json.RawMessage(`{"response_id":"resp-1"}`),
	}
	id, err := tx.UpsertSubmission(ctx, sub)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.Equal(t, int64(7), sub.ID)

	profile := &model.Profile{
		SubmissionID: id,
		FullName:     "Ada Lovelace",
		Skills:       json.RawMessage(`["math"]`),
	}
	require.NoError(t, tx.InsertProfile(ctx, profile))

	facts := &model.SiteFacts{
		SubmissionID: id,
		Title:        "Analytical Engines",
		Technologies: []string{"aws"},
		TeamMembers:  []model.TeamMember{{Name: "Ada Lovelace", Title: "Founder"}},
	}
	require.NoError(t, tx.InsertSiteFacts(ctx, facts))

	require.NoError(t, tx.Commit(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReimportReplacesRecordGraph(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewStoreWithPool(mock)
	require.NoError(t, err)

	// first import commits a submission with a profile
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO submissions").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectExec("DELETE FROM profiles").
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec("DELETE FROM site_facts").
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec("INSERT INTO profiles").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	// the same submission_id reappearing lands on the same row and clears
	// the prior enrichment rows before writing the fresh graph
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO submissions").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectExec("DELETE FROM profiles").
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("DELETE FROM site_facts").
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec("INSERT INTO profiles").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	ctx := context.Background()
	for _, fullName := range []string{"Ada Lovelace", "Ada King"} {
		tx, err := store.Begin(ctx)
		require.NoError(t, err)

		sub := &model.Submission{SubmissionID: "resp-1", FounderName: fullName}
		id, err := tx.UpsertSubmission(ctx, sub)
		require.NoError(t, err)
		assert.Equal(t, int64(7), id)

		require.NoError(t, tx.InsertProfile(ctx, &model.Profile{
			SubmissionID: id,
			FullName:     fullName,
		}))
		require.NoError(t, tx.Commit(ctx))
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertSubmissionErrorAllowsRollback(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewStoreWithPool(mock)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO submissions").
		WillReturnError(errors.New("duplicate key"))
	mock.ExpectRollback()

	ctx := context.Background()
	tx, err := store.Begin(ctx)
	require.NoError(t, err)

	_, err = tx.UpsertSubmission(ctx, &model.Submission{SubmissionID: "resp-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upsert submission")

	require.NoError(t, tx.Rollback(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInitSchema(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewStoreWithPool(mock)
	require.NoError(t, err)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS submissions").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, store.InitSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPing(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewStoreWithPool(mock)
	require.NoError(t, err)

	mock.ExpectPing()
	require.NoError(t, store.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("down"))
	err = store.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ping postgres")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewStoreWithPoolRequiresPool(t *testing.T) {
	t.Parallel()

	_, err := NewStoreWithPool(nil)
	require.Error(t, err)
}
