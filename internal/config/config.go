package config

import (
	"cmp"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultPort          = "8080"
	defaultAPIBaseURL    = "http://localhost:8000/api"
	defaultStorageDriver = "memory"
	defaultDataDir       = "data/visitors"
	defaultCORSOrigins   = "http://localhost:5173"
)

// Drivers de stockage acceptés pour l'état local des visiteurs
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverRedis  = "redis"
)

type Config struct {
	Port          string
	APIBaseURL    string
	SessionSecret string
	SecureCookies bool
	StorageDriver string
	DataDir       string
	RedisHost     string
	RedisPassword string
	CORSOrigins   []string
	Debug         bool
}

// Load charge le fichier .env s'il existe
func Load() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé, on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé avec succès")
	}
}

// Read construit la configuration depuis l'environnement
func Read() (*Config, error) {
	cfg := &Config{
		Port:          cmp.Or(os.Getenv("PORT"), defaultPort),
		APIBaseURL:    strings.TrimRight(cmp.Or(os.Getenv("API_BASE_URL"), defaultAPIBaseURL), "/"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		StorageDriver: strings.ToLower(cmp.Or(os.Getenv("STORAGE_DRIVER"), defaultStorageDriver)),
		DataDir:       cmp.Or(os.Getenv("DATA_DIR"), defaultDataDir),
		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		CORSOrigins:   splitList(lookupOr("CORS_ORIGINS", defaultCORSOrigins)),
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("PORT invalide %q: %w", cfg.Port, err)
	}
	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET manquant")
	}

	var err error
	if cfg.Debug, err = parseBool("DEBUG"); err != nil {
		return nil, err
	}
	if cfg.SecureCookies, err = parseBool("SECURE_COOKIES"); err != nil {
		return nil, err
	}

	switch cfg.StorageDriver {
	case DriverMemory, DriverFile:
	case DriverRedis:
		if cfg.RedisHost == "" {
			return nil, fmt.Errorf("REDIS_HOST non configuré pour le driver redis")
		}
	default:
		return nil, fmt.Errorf("STORAGE_DRIVER inconnu: %q", cfg.StorageDriver)
	}

	return cfg, nil
}

func parseBool(name string) (bool, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s invalide %q: %w", name, raw, err)
	}
	return v, nil
}

// lookupOr distingue une variable absente (valeur par défaut) d'une variable
// définie à vide, qui est conservée telle quelle
func lookupOr(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
