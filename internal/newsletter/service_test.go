package newsletter

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/apexitsupply/apex-backend/pkg/db/models"
	pkgerrors "github.com/apexitsupply/apex-backend/pkg/errors"
	"github.com/apexitsupply/apex-backend/pkg/pagination"
)

type fakeRepo struct {
	rows   []models.Subscriber
	nextID int64
}

func (f *fakeRepo) Create(_ context.Context, row *models.Subscriber) (*models.Subscriber, error) {
	for _, existing := range f.rows {
		if existing.Email == row.Email {
			return nil, errors.New(`duplicate key value violates unique constraint "subscribers_email_key"`)
		}
	}
	f.nextID++
	row.ID = f.nextID
	row.CreatedAt = time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	f.rows = append(f.rows, *row)
	return row, nil
}

func (f *fakeRepo) List(_ context.Context, _ pagination.Params) ([]models.Subscriber, int64, error) {
	return f.rows, int64(len(f.rows)), nil
}

func (f *fakeRepo) ListAll(context.Context) ([]models.Subscriber, error) {
	return f.rows, nil
}

func TestSubscribeNormalizesEmail(t *testing.T) {
	repo := &fakeRepo{}
	svc, err := NewService(repo)
	require.NoError(t, err)

	msg, err := svc.Subscribe(context.Background(), "  Dana@Example.COM ")
	require.NoError(t, err)
	require.Equal(t, subscribedMessage, msg)
	require.Equal(t, "dana@example.com", repo.rows[0].Email)
}

func TestSubscribeDuplicateIsConflict(t *testing.T) {
	repo := &fakeRepo{}
	svc, err := NewService(repo)
	require.NoError(t, err)

	_, err = svc.Subscribe(context.Background(), "dana@example.com")
	require.NoError(t, err)

	_, err = svc.Subscribe(context.Background(), "DANA@example.com")
	requireCode(t, err, pkgerrors.CodeConflict)
}

func TestSubscribeValidation(t *testing.T) {
	svc, err := NewService(&fakeRepo{})
	require.NoError(t, err)

	for _, email := range []string{"", "   ", "not-an-email", "@example.com", "dana@"} {
		_, err := svc.Subscribe(context.Background(), email)
		requireCode(t, err, pkgerrors.CodeValidation)
	}
}

func TestListSubscribers(t *testing.T) {
	repo := &fakeRepo{}
	svc, err := NewService(repo)
	require.NoError(t, err)

	_, err = svc.Subscribe(context.Background(), "dana@example.com")
	require.NoError(t, err)

	result, err := svc.ListSubscribers(context.Background(), pagination.Params{Page: 1, PerPage: 10})
	require.NoError(t, err)
	require.EqualValues(t, 1, result.Total)
	require.Equal(t, "dana@example.com", result.Data[0].Email)
}

func TestExportCSV(t *testing.T) {
	repo := &fakeRepo{}
	svc, err := NewService(repo)
	require.NoError(t, err)

	_, err = svc.Subscribe(context.Background(), "dana@example.com")
	require.NoError(t, err)
	_, err = svc.Subscribe(context.Background(), "lee@example.com")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "id,email,created_at", lines[0])
	require.Contains(t, lines[1], "dana@example.com")
	require.Contains(t, lines[2], "lee@example.com")
}

func requireCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected typed error, got %v", err)
	require.Equal(t, code, typed.Code())
}
