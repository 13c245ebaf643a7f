package promotion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "promotions.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_DropsInvalidRecords(t *testing.T) {
	path := writeCatalog(t, `{
		"promotions": [
			{
				"id": "good",
				"startDate": "2025-09-01",
				"endDate": "2025-09-30",
				"imageFolder": "september",
				"active": true,
				"spirit": {"name": "Gin", "category": "Gin", "originalPrice": "£4.00", "specialPrice": "£3.00"},
				"promotion": {"headline": "h", "offerText": "o", "metaTitle": "t", "metaDescription": "d"}
			},
			{
				"id": "bad-dates",
				"startDate": "September 1st",
				"endDate": "2025-09-30",
				"imageFolder": "september",
				"active": true,
				"spirit": {"name": "Gin", "category": "Gin", "originalPrice": "£4.00", "specialPrice": "£3.00"},
				"promotion": {"headline": "h", "offerText": "o", "metaTitle": "t", "metaDescription": "d"}
			},
			{
				"id": "bad-price",
				"startDate": "2025-10-01",
				"endDate": "2025-10-31",
				"imageFolder": "october",
				"active": true,
				"spirit": {"name": "Rum", "category": "Rum", "originalPrice": "4 pounds", "specialPrice": "£3.00"},
				"promotion": {"headline": "h", "offerText": "o", "metaTitle": "t", "metaDescription": "d"}
			}
		]
	}`)

	logger := zerolog.Nop()
	catalog, err := Load(path, &logger)
	require.NoError(t, err)

	require.Len(t, catalog.Promotions, 1)
	assert.Equal(t, "good", catalog.Promotions[0].ID)

	require.Len(t, catalog.Invalid, 2)
	assert.Equal(t, "bad-dates", catalog.Invalid[0].ID)
	assert.Contains(t, catalog.Invalid[0].Reason, "startDate")
	assert.Equal(t, "bad-price", catalog.Invalid[1].ID)
	assert.Contains(t, catalog.Invalid[1].Reason, "originalPrice")
}

func TestLoad_MissingFile(t *testing.T) {
	logger := zerolog.Nop()
	catalog, err := Load(filepath.Join(t.TempDir(), "missing.json"), &logger)

	// Degrades to an empty catalog; the caller decides whether to log.
	assert.Error(t, err)
	require.NotNil(t, catalog)
	assert.Empty(t, catalog.Promotions)
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := writeCatalog(t, `{"promotions": [`)
	logger := zerolog.Nop()

	catalog, err := Load(path, &logger)
	assert.Error(t, err)
	require.NotNil(t, catalog)
	assert.Empty(t, catalog.Promotions)
}

func TestCatalogByID(t *testing.T) {
	catalog := &Catalog{Promotions: []Promotion{validPromotion()}}

	found := catalog.ByID("september-2025")
	require.NotNil(t, found)
	assert.Equal(t, "The Botanist", found.Spirit.Name)

	assert.Nil(t, catalog.ByID("nope"))
}

func TestStoreReplace(t *testing.T) {
	store := NewStore(nil)
	require.NotNil(t, store.Catalog())
	assert.Empty(t, store.Catalog().Promotions)

	store.Replace(&Catalog{Promotions: []Promotion{validPromotion()}})
	assert.Len(t, store.Catalog().Promotions, 1)

	// Nil replacements are ignored rather than wiping the catalog.
	store.Replace(nil)
	assert.Len(t, store.Catalog().Promotions, 1)
}
