package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"oompa/backend/internal/cache"
	"oompa/backend/internal/model"
	"oompa/backend/internal/service"
	"oompa/backend/internal/service/mock"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestImageService_UnknownEntity(t *testing.T) {
	ctrl := gomock.NewController(t)
	list := service.NewListService(mock.NewMockCatalogClient(ctrl), testPolicy(newFakeClock()), nil, nil, nil)
	details := service.NewDetailService(mock.NewMockCatalogClient(ctrl), nil, testPolicy(newFakeClock()), nil, nil, nil)
	svc := service.NewImageService(details, list, nil, nil)

	_, err := svc.Fetch(context.Background(), 42)
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestImageService_RejectsNonHTTPScheme(t *testing.T) {
	ctrl := gomock.NewController(t)
	list := service.NewListService(mock.NewMockCatalogClient(ctrl), testPolicy(newFakeClock()), nil, nil, nil)
	list.MergePage(context.Background(), 1, []model.Oompa{{ID: 1, FirstName: "A", Image: "file:///etc/passwd"}})
	svc := service.NewImageService(nil, list, nil, nil)

	_, err := svc.Fetch(context.Background(), 1)
	require.ErrorIs(t, err, service.ErrInvalid)
}

func TestImageService_PrefersDetailImage(t *testing.T) {
	ctrl := gomock.NewController(t)
	list := service.NewListService(mock.NewMockCatalogClient(ctrl), testPolicy(newFakeClock()), nil, nil, nil)
	list.MergePage(context.Background(), 1, []model.Oompa{{ID: 1, Image: "https://cdn.example.com/a.png"}})

	store := cache.NewDetailStore()
	store.Put(1, model.OompaDetail{ID: 1, Image: "ftp://cdn.example.com/a.png"}, time.Now())
	details := service.NewDetailService(mock.NewMockCatalogClient(ctrl), store, testPolicy(newFakeClock()), nil, nil, nil)
	svc := service.NewImageService(details, list, nil, nil)

	// The detail entry wins and its scheme is rejected before any request.
	_, err := svc.Fetch(context.Background(), 1)
	require.ErrorIs(t, err, service.ErrInvalid)
}

func TestReadLimited(t *testing.T) {
	data, err := service.ReadLimited(strings.NewReader("12345"), 5)
	require.NoError(t, err)
	require.Equal(t, []byte("12345"), data)

	_, err = service.ReadLimited(strings.NewReader("123456"), 5)
	require.Error(t, err)

	data, err = service.ReadLimited(nil, 5)
	require.NoError(t, err)
	require.Empty(t, data)
}
