package main

import (
	"fmt"
	"log"

	"github.com/abbrev-extract/internal/config"
	"github.com/abbrev-extract/internal/web"
)

func main() {
	// Load environment configuration
	config.LoadEnv()

	fmt.Println("=== Abbreviation Extraction API ===")

	webConfig, err := buildConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	fmt.Printf("Server: http://%s:%d\n", webConfig.Server.Host, webConfig.Server.Port)

	server, err := web.NewServer(webConfig)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	fmt.Println("\nFeatures enabled:")
	fmt.Printf("  Ad-hoc extraction: %v\n", webConfig.Features.AdHocExtractEnabled)
	fmt.Printf("  API key auth: %v\n", webConfig.Auth.Enabled)
	fmt.Println()

	// Start server
	if err := server.Start(); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

// buildConfig reads the file named by WEB_CONFIG when set, otherwise
// assembles the configuration from individual environment variables.
func buildConfig() (*web.Config, error) {
	if path := config.GetEnv("WEB_CONFIG", ""); path != "" {
		return web.LoadConfig(path)
	}

	return &web.Config{
		Server: web.ServerConfig{
			Port: config.GetEnvInt("WEB_PORT", 8080),
			Host: config.GetEnv("WEB_HOST", "0.0.0.0"),
		},
		Database: web.DatabaseConfig{
			URL: fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
				config.GetEnv("PGUSER", "abbrev"),
				config.GetEnv("PGPASSWORD", "abbrev"),
				config.GetEnv("PGHOST", "localhost"),
				config.GetEnv("PGPORT", "5432"),
				config.GetEnv("PGDATABASE", "abbrev")),
			MaxConnections: config.GetEnvInt("DB_MAX_CONNECTIONS", 10),
		},
		Auth: web.AuthConfig{
			Enabled: config.GetEnvBool("API_AUTH_ENABLED", false),
			APIKey:  config.GetEnv("API_KEY", ""),
		},
		Features: web.FeatureConfig{
			AdHocExtractEnabled: config.GetEnvBool("ENABLE_ADHOC_EXTRACT", true),
			CacheSize:           config.GetEnvInt("EXTRACT_CACHE_SIZE", 1024),
		},
	}, nil
}
