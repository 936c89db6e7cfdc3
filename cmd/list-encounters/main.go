package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/dcc-bot-discord/internal/repositories/characters"
	"github.com/KirkDiggler/dcc-bot-discord/internal/repositories/encounters"
)

// Prints every combatant record and running encounter stored in Redis
func main() {
	_ = godotenv.Load()
	ctx := context.Background()

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)
	defer client.Close()

	if _, pingErr := client.Ping(ctx).Result(); pingErr != nil {
		log.Fatalf("Failed to connect to Redis: %v", pingErr)
	}

	charRepo := characters.NewRedisRepository(&characters.RedisRepoConfig{Client: client})
	encRepo := encounters.NewRedisRepository(&encounters.RedisRepoConfig{Client: client})

	records, err := charRepo.List(ctx)
	if err != nil {
		log.Fatalf("Failed to list combatant records: %v", err)
	}

	fmt.Printf("Found %d combatant records:\n", len(records))
	for _, c := range records {
		luck, maxLuck := c.Luck()
		status := ""
		if !c.IsAlive() {
			status = "  (down)"
		}
		fmt.Printf("  %-20s %-8s L%d  HP %d/%d  AC %d  Luck %d/%d%s\n",
			c.Name, c.Class, c.Level, c.HP.Current, c.HP.Max, c.AC, luck, maxLuck, status)
	}

	encounterKeys, err := client.Keys(ctx, "encounter:*").Result()
	if err != nil {
		log.Fatalf("Failed to get encounter keys: %v", err)
	}

	fmt.Printf("\nFound %d encounters:\n", len(encounterKeys))
	for _, key := range encounterKeys {
		sessionID := strings.TrimPrefix(key, "encounter:")
		tracker, getErr := encRepo.Get(ctx, sessionID)
		if getErr != nil {
			fmt.Printf("  %s: ERROR - %v\n", sessionID, getErr)
			continue
		}

		fmt.Printf("  %s: round %d, %d combatants\n", sessionID, tracker.Round, len(tracker.Entries))
		for row := range tracker.List() {
			fmt.Printf("    %s\n", row)
		}
	}
}
