package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectionFor_PluralizationFallback(t *testing.T) {
	cfg := DefaultCatalogConfig()

	assert.Equal(t, "pricing-mxs", cfg.CollectionFor("MX"))
	assert.Equal(t, "pricing-cos", cfg.CollectionFor("co"))
	// Codes already ending in "s" get the Spanish plural.
	assert.Equal(t, "pricing-uses", cfg.CollectionFor("US"))
}

func TestCollectionFor_ExplicitOverride(t *testing.T) {
	cfg := CatalogConfig{
		DefaultCountry: "US",
		Collections:    map[string]string{"mx": "pricing-mexico"},
	}

	assert.Equal(t, "pricing-mexico", cfg.CollectionFor("MX"))
	assert.Equal(t, "pricing-cos", cfg.CollectionFor("CO"))
}

func TestCollectionFor_EmptyCountryUsesDefault(t *testing.T) {
	cfg := CatalogConfig{DefaultCountry: "MX"}

	assert.Equal(t, "pricing-mxs", cfg.CollectionFor("  "))
}
