package database

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jlbernardo/barangaylink/internal/models"
)

func TestAutoMigrateAndSeed(t *testing.T) {
	db, err := Open(Config{Driver: "sqlite"})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		require.NoError(t, err)
		_ = sqlDB.Close()
	})

	require.NoError(t, AutoMigrateAndSeed(db))

	var count int64
	require.NoError(t, db.Model(&models.Service{}).Count(&count).Error)
	require.EqualValues(t, 5, count)

	var clearance models.Service
	require.NoError(t, db.Preload("Requirements").
		First(&clearance, "slug = ?", "barangay-clearance").Error)
	require.Equal(t, "Barangay Clearance", clearance.Name)
	require.InDelta(t, 50.0, clearance.Fee, 0.001)
	require.Len(t, clearance.Requirements, 2)

	// Seeding again must not duplicate catalog rows.
	require.NoError(t, SeedData(db))
	require.NoError(t, db.Model(&models.Service{}).Count(&count).Error)
	require.EqualValues(t, 5, count)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(Config{Driver: "oracle"})
	require.Error(t, err)
}
