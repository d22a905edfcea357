package services

import (
	"testing"
	"time"

	"github.com/abhiraj-restaurant/restaurant-api/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// fixedNow is the clock used by admission tests: 15 June 2025, noon UTC
var fixedNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time {
	return fixedNow
}

// setupServiceTestDB opens a migrated in-memory database. A single
// connection keeps every goroutine on the same in-memory database.
func setupServiceTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, models.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name, email, role string) models.User {
	user := models.User{Name: name, Email: email, Phone: "+1234567890", Role: role}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createTestMenuItem(t *testing.T, db *gorm.DB, name string, price float64, available bool) models.MenuItem {
	item := models.MenuItem{
		Name:            name,
		Description:     name + " description",
		Price:           price,
		Category:        models.CategoryMains,
		IsAvailable:     available,
		PreparationTime: DefaultPreparationTime,
	}
	require.NoError(t, db.Create(&item).Error)
	return item
}

func intPtr(v int) *int           { return &v }
func uintPtr(v uint) *uint        { return &v }
func floatPtr(v float64) *float64 { return &v }
func stringPtr(v string) *string  { return &v }
func boolPtr(v bool) *bool        { return &v }
