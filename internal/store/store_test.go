package store

import "github.com/glowlink/creator-cli/internal/config"

func configFor(driver, url string) config.StoreConfig {
	return config.StoreConfig{Driver: driver, DatabaseURL: url}
}
