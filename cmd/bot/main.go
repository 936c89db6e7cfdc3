package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/dcc-bot-discord/internal/config"
	"github.com/KirkDiggler/dcc-bot-discord/internal/dice"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/equipment"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/tables"
	"github.com/KirkDiggler/dcc-bot-discord/internal/handlers/discord"
	"github.com/KirkDiggler/dcc-bot-discord/internal/repositories/characters"
	"github.com/KirkDiggler/dcc-bot-discord/internal/repositories/encounters"
	"github.com/KirkDiggler/dcc-bot-discord/internal/services/combat"
	"github.com/KirkDiggler/dcc-bot-discord/internal/telemetry"
	"github.com/KirkDiggler/dcc-bot-discord/internal/uuid"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("Application ID: %s", cfg.Discord.AppID)
	if cfg.Discord.GuildID != "" {
		log.Printf("Guild ID: %s", cfg.Discord.GuildID)
	}

	ctx := context.Background()

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		ServiceName: cfg.Telemetry.ServiceName,
		Endpoint:    cfg.Telemetry.Endpoint,
	})
	if err != nil {
		log.Fatalf("Failed to set up tracing: %v", err)
	}

	roller := dice.NewRandomRoller()
	uuidGen := uuid.NewGoogleUUIDGenerator()

	loader := tables.NewEmbeddedLoader()
	if cfg.Tables.Dir != "" {
		log.Printf("Loading crit and fumble tables from %s", cfg.Tables.Dir)
		loader = tables.NewDirLoader(cfg.Tables.Dir)
	}
	engine, err := tables.NewEngine(ctx, &tables.EngineConfig{
		Loader:        loader,
		Roller:        roller,
		UUIDGenerator: uuidGen,
	})
	if err != nil {
		log.Fatalf("Failed to load tables: %v", err)
	}

	characterRepo := characters.NewInMemoryRepository()
	encounterRepo := encounters.NewInMemoryRepository()

	// Keep Redis client for cleanup
	var redisClient *redis.Client

	if cfg.Redis.Addr != "" {
		log.Printf("Connecting to Redis at: %s", cfg.Redis.Addr)
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		pingErr := redisClient.Ping(pingCtx).Err()
		cancel()

		if pingErr != nil {
			log.Printf("Failed to connect to Redis: %v", pingErr)
			log.Println("Falling back to in-memory repositories")
			_ = redisClient.Close()
			redisClient = nil
		} else {
			log.Println("Successfully connected to Redis")
			characterRepo = characters.NewRedisRepository(&characters.RedisRepoConfig{Client: redisClient})
			encounterRepo = encounters.NewRedisRepository(&encounters.RedisRepoConfig{Client: redisClient})
			log.Println("Using Redis for persistence")
		}
	} else {
		log.Println("No Redis address configured, using in-memory repositories")
	}

	rules := cfg.Rules.AttackRules()
	combatService := combat.NewService(&combat.ServiceConfig{
		Characters:    characterRepo,
		Encounters:    encounterRepo,
		Tables:        engine,
		Catalog:       equipment.DefaultCatalog(),
		Roller:        roller,
		Rules:         &rules,
		UUIDGenerator: uuidGen,
		Tracer:        telemetry.Tracer("combat"),
	})

	dg, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		log.Fatalf("Failed to create Discord session: %v", err)
	}

	handler := discord.NewHandler(&discord.HandlerConfig{
		CombatService: combatService,
	})
	dg.AddHandler(discord.RecoverMiddleware("interaction", handler.HandleInteraction))

	if err := dg.Open(); err != nil {
		log.Printf("Failed to open Discord connection: %v", err)
		return
	}
	defer func() {
		if clientErr := dg.Close(); clientErr != nil {
			log.Printf("Failed to close Discord connection: %v", clientErr)
		}
	}()

	// Empty guild ID registers global commands
	if err := handler.RegisterCommands(dg, cfg.Discord.GuildID); err != nil {
		log.Printf("Failed to register commands: %v", err)
		return
	}

	if cfg.Discord.GuildID != "" {
		log.Printf("Registered commands for guild: %s", cfg.Discord.GuildID)
	} else {
		log.Println("Registered global commands (may take up to 1 hour to propagate)")
	}

	fmt.Println("Bot is now running. Press CTRL-C to exit.")

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	fmt.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Printf("Error flushing traces: %v", err)
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Printf("Error closing Redis connection: %v", err)
		} else {
			log.Println("Closed Redis connection")
		}
	}
}
