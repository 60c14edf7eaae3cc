package importer

import (
	"os"
	"strings"
	"testing"

	"github.com/filipinasabroad/abroad-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.VisaRequirement{}))
	return db
}

func TestVisaRequirementsUpsert(t *testing.T) {
	db := testDB(t)
	imp := New(db)

	// Fixed pair; clear leftovers from earlier runs.
	require.NoError(t, db.
		Where("nationality_code = ? AND destination_country_code = ?", "ZZ", "QX").
		Delete(&models.VisaRequirement{}).Error)

	header := "nationality_code,destination_country_code,summary,required_documents,official_url\n"

	res, err := imp.VisaRequirements(strings.NewReader(header +
		"ZZ,QX,Student visa required,Passport,https://embassy.example/old\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 0, res.Updated)

	// Replaying the same pair must refresh the row, not add a second one.
	res, err = imp.VisaRequirements(strings.NewReader(header +
		"ZZ,QX,Visa on arrival now offered,Passport and photo,https://embassy.example/new\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created)
	assert.Equal(t, 1, res.Updated)

	var rows []models.VisaRequirement
	require.NoError(t, db.
		Where("nationality_code = ? AND destination_country_code = ?", "ZZ", "QX").
		Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "Visa on arrival now offered", rows[0].Summary)
	assert.Equal(t, "Passport and photo", rows[0].RequiredDocuments)
	assert.Equal(t, "https://embassy.example/new", rows[0].OfficialURL)
}
