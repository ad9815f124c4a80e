package config

import "os"

// Config carries the process-wide settings the request flow needs. It is read
// once at startup and threaded explicitly into the components that use it.
type Config struct {
	Port      string
	BaseURL   string // origin prefixed to stored image URLs at creation time
	UploadDir string
}

func Load() Config {
	return Config{
		Port:      getenv("PORT", "3000"),
		BaseURL:   getenv("BASE_URL", "http://localhost:3000"),
		UploadDir: getenv("UPLOAD_DIR", "./uploads"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
