package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jlbernardo/barangaylink/internal/database/testutil"
	"github.com/jlbernardo/barangaylink/internal/models"
	apperrors "github.com/jlbernardo/barangaylink/pkg/errors"
)

func TestCatalogServiceListActive(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithSeedData())
	svc, err := NewCatalogService(db)
	require.NoError(t, err)
	ctx := context.Background()

	services, err := svc.ListActive(ctx, "")
	require.NoError(t, err)
	require.Len(t, services, 5)
	require.Equal(t, "Barangay Clearance", services[0].Name)
	require.Len(t, services[0].Requirements, 2)
	require.Equal(t, "Valid government-issued ID", services[0].Requirements[0].Requirement)

	permits, err := svc.ListActive(ctx, "permit")
	require.NoError(t, err)
	require.Len(t, permits, 1)
	require.Equal(t, "barangay-business-clearance", permits[0].Slug)

	// "all" behaves like no filter.
	all, err := svc.ListActive(ctx, "all")
	require.NoError(t, err)
	require.Len(t, all, 5)
}

func TestCatalogServiceListSkipsInactive(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithSeedData())
	svc, err := NewCatalogService(db)
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Service{}).
		Where("slug = ?", "barangay-id").
		Update("is_active", false).Error)

	services, err := svc.ListActive(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, services, 4)
	for _, service := range services {
		require.NotEqual(t, "barangay-id", service.Slug)
	}
}

func TestCatalogServiceGetBySlug(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithSeedData())
	svc, err := NewCatalogService(db)
	require.NoError(t, err)
	ctx := context.Background()

	service, err := svc.GetBySlug(ctx, "certificate-of-indigency")
	require.NoError(t, err)
	require.Equal(t, "Certificate of Indigency", service.Name)
	require.Zero(t, service.Fee)
	require.Len(t, service.Requirements, 2)

	_, err = svc.GetBySlug(ctx, "no-such-service")
	require.Error(t, err)
	require.Equal(t, 404, apperrors.FromError(err).StatusCode)

	// Deactivated services are hidden from the public catalog.
	require.NoError(t, db.Model(&models.Service{}).
		Where("slug = ?", "certificate-of-indigency").
		Update("is_active", false).Error)
	_, err = svc.GetBySlug(ctx, "certificate-of-indigency")
	require.Error(t, err)
	require.Equal(t, 404, apperrors.FromError(err).StatusCode)
}
