package main

import (
	"context"
	"log"
	"os"

	"langbot/internal/adapters/discord"
	"langbot/internal/application"
	"langbot/internal/config"
	"langbot/internal/infrastructure/database"
	"langbot/internal/infrastructure/i18n"
	"langbot/internal/infrastructure/libretranslate"
	"langbot/internal/infrastructure/memcache"
	"langbot/internal/infrastructure/openai"
	"langbot/internal/infrastructure/rediscache"
	"langbot/internal/ports/output"
	"langbot/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Erreur de configuration: %v", err)
	}

	ctx := context.Background()

	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatalf("❌ Erreur lors des migrations: %v", err)
	}

	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Erreur lors de l'initialisation de la base de données: %v", err)
	}
	defer pool.Close()

	var cache output.TranslationCache
	if cfg.RedisAddr != "" {
		redisCache, err := rediscache.New(ctx, cfg.RedisAddr, cfg.RedisPassword, application.TranslationTTL)
		if err != nil {
			log.Fatalf("❌ Erreur lors de la connexion à Redis: %v", err)
		}
		cache = redisCache
	} else {
		log.Println("⚠️ REDIS_ADDR absent, cache de traduction en mémoire locale.")
		cache = memcache.New()
	}

	providers := make([]output.TranslationProvider, 0, len(cfg.TranslatorURLs))
	for _, u := range cfg.TranslatorURLs {
		providers = append(providers, libretranslate.New(u))
	}
	translator := application.NewTranslationRouter(ctx, cache, providers...)

	services := &session.Services{
		Translator: translator,
		Identities: database.NewIdentityRepository(pool),
		Users:      database.NewUserRepository(pool),
		Vocabulary: database.NewVocabularyRepository(pool),
		Messages:   i18n.NewTranslator("en"),
		Chatbot:    openai.NewService(cfg.OpenAIKey),
	}
	registry := session.NewRegistry(services)

	bot := discord.NewBot(cfg, registry)
	if err := bot.Start(); err != nil {
		log.Printf("❌ Erreur lors du démarrage du bot: %v", err)
		os.Exit(1)
	}
}
