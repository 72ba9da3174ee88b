// Файл: config/config.go
package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type StorageConfig struct {
	// Директория локального файлового бэкенда (аналог localStorage браузера).
	Dir string
}

type RedisConfig struct {
	// Если адрес пустой - redis-бэкенд не используется.
	Address  string
	Password string
}

type ExportConfig struct {
	Dir string
}

type Config struct {
	Storage StorageConfig
	Redis   RedisConfig
	Export  ExportConfig
}

func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Предупреждение: .env файл не найден или не удалось его загрузить.")
	}

	return &Config{
		Storage: StorageConfig{
			Dir: getEnv("STORAGE_DIR", "./data"),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDRESS", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		Export: ExportConfig{
			Dir: getEnv("EXPORT_DIR", "./exports"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
