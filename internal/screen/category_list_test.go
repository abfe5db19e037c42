package screen_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kislikjeka/expensetrack/internal/infra/gateway/expenseapi"
	"github.com/kislikjeka/expensetrack/internal/module/category"
	"github.com/kislikjeka/expensetrack/internal/screen"
	apperrors "github.com/kislikjeka/expensetrack/internal/shared/errors"
	"github.com/kislikjeka/expensetrack/pkg/logger"
	"github.com/kislikjeka/expensetrack/testutil/fakeapi"
)

func newCategoryScreen(t *testing.T) (*screen.CategoryList, *fakeapi.Server) {
	t.Helper()
	srv := fakeapi.New(t)
	client := expenseapi.NewClient(srv.URL, logger.Discard())
	slice := category.NewSlice(category.NewAPI(client), logger.Discard())
	s := screen.NewCategoryList(slice, logger.Discard())
	t.Cleanup(s.Unmount)
	return s, srv
}

func TestCategoryList_MountAndCreate(t *testing.T) {
	s, srv := newCategoryScreen(t)
	srv.Seed(fakeapi.Categories, category.CreateCategoryDTO{Name: "Food"})

	require.NoError(t, s.Mount(context.Background()))
	require.Len(t, s.Rows(), 1)

	s.SetName("  Travel ")
	s.SetDescription("Trips")
	created, err := s.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Travel", created.Name)

	rows := s.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, created, rows[1])
	assert.Len(t, srv.Items(fakeapi.Categories), 2)
}

func TestCategoryList_Submit_NameRequired(t *testing.T) {
	s, srv := newCategoryScreen(t)

	s.SetName("   ")
	_, err := s.Submit(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
	require.NotNil(t, s.Dialog())
	assert.Equal(t, screen.TitleNameRequired, s.Dialog().Title)
	assert.Equal(t, 0, srv.CountRequests(http.MethodPost, "/categories"))

	require.NoError(t, s.Dismiss())
	assert.Nil(t, s.Dialog())
	assert.ErrorIs(t, s.Dismiss(), screen.ErrNoDialog)
}

func TestCategoryList_Submit_Failure(t *testing.T) {
	s, srv := newCategoryScreen(t)
	srv.FailNext(http.MethodPost, "/categories", http.StatusInternalServerError)

	s.SetName("Rent")
	_, err := s.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apperrors.StatusCode(s.Err()))
	assert.Empty(t, s.Rows())
}
