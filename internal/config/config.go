package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DiscordToken   string
	DatabaseURL    string
	MigrationsPath string
	RedisAddr      string
	RedisPassword  string
	OpenAIKey      string
	TranslatorURLs []string
}

// Load charge la configuration depuis les variables d'environnement et la valide.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env est optionnel lorsque les variables sont fournies par l'environnement (Docker, CI, etc.).
	}

	cfg := &Config{
		DiscordToken:   os.Getenv("DISCORD_TOKEN"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		TranslatorURLs: splitURLs(os.Getenv("LIBRETRANSLATE_URLS")),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func splitURLs(raw string) []string {
	var urls []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			urls = append(urls, part)
		}
	}
	return urls
}

// validate applique toutes les règles métier sur la configuration chargée.
func (c *Config) validate() error {
	if strings.TrimSpace(c.DiscordToken) == "" {
		return fmt.Errorf("config: DISCORD_TOKEN est requis et ne peut pas être vide")
	}

	if strings.TrimSpace(c.DatabaseURL) == "" {
		// Valeur par défaut utile en local lorsque DATABASE_URL n'est pas fournie.
		c.DatabaseURL = "postgres://localhost:5432/langbot?sslmode=disable"
	}

	parsed, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return fmt.Errorf("config: DATABASE_URL invalide (%q): %w", c.DatabaseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: DATABASE_URL invalide (%q): scheme ou host manquant", c.DatabaseURL)
	}

	if strings.TrimSpace(c.MigrationsPath) == "" {
		c.MigrationsPath = "migrations"
	}

	if len(c.TranslatorURLs) == 0 {
		return fmt.Errorf("config: LIBRETRANSLATE_URLS est requis (liste d'URLs séparées par des virgules)")
	}
	for _, u := range c.TranslatorURLs {
		parsed, err := url.Parse(u)
		if err != nil {
			return fmt.Errorf("config: URL LibreTranslate invalide (%q): %w", u, err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("config: URL LibreTranslate invalide (%q): scheme ou host manquant", u)
		}
	}

	if strings.TrimSpace(c.OpenAIKey) == "" {
		return fmt.Errorf("config: OPENAI_API_KEY est requis et ne peut pas être vide")
	}

	return nil
}
