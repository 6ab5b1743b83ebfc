package config

import (
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// CatalogConfig maps storefront countries onto content-backend pricing
// collections. Collections not listed explicitly fall back to the
// pluralization rule the storefront has always used.
type CatalogConfig struct {
	DefaultCountry string            `mapstructure:"defaultCountry"`
	Collections    map[string]string `mapstructure:"collections"`
}

func DefaultCatalogConfig() CatalogConfig {
	return CatalogConfig{
		DefaultCountry: "US",
		Collections:    map[string]string{},
	}
}

// CollectionFor resolves the pricing collection for a country code.
// The fallback preserves the historical naming scheme: lowercase the country
// and append "es" when it already ends in "s", otherwise "s".
func (c CatalogConfig) CollectionFor(country string) string {
	key := strings.ToLower(strings.TrimSpace(country))
	if key == "" {
		key = strings.ToLower(c.DefaultCountry)
	}
	if c.Collections != nil {
		if collection, ok := c.Collections[key]; ok && strings.TrimSpace(collection) != "" {
			return collection
		}
	}
	suffix := "s"
	if strings.HasSuffix(key, "s") {
		suffix = "es"
	}
	return "pricing-" + key + suffix
}

// CatalogConfigHolder exposes the current catalog config and hot-reloads it
// when the backing file changes.
type CatalogConfigHolder struct {
	current atomic.Value // holds CatalogConfig
}

func NewCatalogConfigHolder() (*CatalogConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("checkout")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/cremaciondirecta")
	v.AddConfigPath(".")

	v.SetEnvPrefix("CHECKOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultCatalogConfig()
		v.SetDefault("catalog.defaultCountry", defaults.DefaultCountry)
		v.SetDefault("catalog.collections", defaults.Collections)
	}

	holder := &CatalogConfigHolder{}
	if err := holder.load(v); err != nil {
		return nil, err
	}

	v.OnConfigChange(func(_ fsnotify.Event) {
		if err := holder.load(v); err != nil {
			log.Printf("catalog config reload failed: %v", err)
		}
	})
	v.WatchConfig()

	return holder, nil
}

func (h *CatalogConfigHolder) load(v *viper.Viper) error {
	var cfg CatalogConfig
	if err := v.UnmarshalKey("catalog", &cfg); err != nil {
		return err
	}
	if strings.TrimSpace(cfg.DefaultCountry) == "" {
		cfg.DefaultCountry = DefaultCatalogConfig().DefaultCountry
	}
	h.current.Store(cfg)
	return nil
}

// Current returns the active catalog config.
func (h *CatalogConfigHolder) Current() CatalogConfig {
	value := h.current.Load()
	cfg, ok := value.(CatalogConfig)
	if !ok {
		return DefaultCatalogConfig()
	}
	return cfg
}
