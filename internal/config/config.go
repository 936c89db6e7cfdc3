package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/game/combat/attack"
)

// Config holds all configuration for the application
type Config struct {
	Discord   DiscordConfig
	Redis     RedisConfig
	Tables    TablesConfig
	Rules     RulesConfig
	Telemetry TelemetryConfig
}

// DiscordConfig holds Discord-specific configuration
type DiscordConfig struct {
	Token   string
	AppID   string
	GuildID string // Optional: for guild-specific commands
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// TablesConfig points at crit/fumble table files. An empty Dir uses the
// tables compiled into the binary.
type TablesConfig struct {
	Dir string
}

// RulesConfig holds the house-rule constants of attack resolution
type RulesConfig struct {
	DeedSuccessThreshold     int
	MountedHigherGroundBonus int
	ChargeAttackBonus        int
	FiringIntoMeleePenalty   int
	MediumRangePenalty       int
	LongRangeDieSteps        int
}

// TelemetryConfig configures trace export. Tracing is off when Endpoint is empty.
type TelemetryConfig struct {
	ServiceName string
	Endpoint    string
}

// DefaultRules returns the tabletop values of the rule constants
func DefaultRules() RulesConfig {
	r := attack.DefaultRules()
	return RulesConfig{
		DeedSuccessThreshold:     r.DeedSuccessThreshold,
		MountedHigherGroundBonus: r.MountedHigherGroundBonus,
		ChargeAttackBonus:        r.ChargeAttackBonus,
		FiringIntoMeleePenalty:   r.FiringIntoMeleePenalty,
		MediumRangePenalty:       r.MediumRangePenalty,
		LongRangeDieSteps:        r.LongRangeDieSteps,
	}
}

// AttackRules converts the config section into aggregator rules
func (r RulesConfig) AttackRules() attack.Rules {
	return attack.Rules{
		DeedSuccessThreshold:     r.DeedSuccessThreshold,
		MountedHigherGroundBonus: r.MountedHigherGroundBonus,
		ChargeAttackBonus:        r.ChargeAttackBonus,
		FiringIntoMeleePenalty:   r.FiringIntoMeleePenalty,
		MediumRangePenalty:       r.MediumRangePenalty,
		LongRangeDieSteps:        r.LongRangeDieSteps,
	}
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	defaults := DefaultRules()

	cfg := &Config{
		Discord: DiscordConfig{
			Token:   os.Getenv("DISCORD_TOKEN"),
			AppID:   os.Getenv("DISCORD_APP_ID"),
			GuildID: os.Getenv("DISCORD_GUILD_ID"),
		},
		Redis: RedisConfig{
			Addr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
		},
		Tables: TablesConfig{
			Dir: os.Getenv("DCC_TABLES_DIR"),
		},
		Rules: RulesConfig{
			DeedSuccessThreshold:     getEnvAsIntOrDefault("DCC_DEED_THRESHOLD", defaults.DeedSuccessThreshold),
			MountedHigherGroundBonus: getEnvAsIntOrDefault("DCC_HIGHER_GROUND_BONUS", defaults.MountedHigherGroundBonus),
			ChargeAttackBonus:        getEnvAsIntOrDefault("DCC_CHARGE_BONUS", defaults.ChargeAttackBonus),
			FiringIntoMeleePenalty:   getEnvAsIntOrDefault("DCC_INTO_MELEE_PENALTY", defaults.FiringIntoMeleePenalty),
			MediumRangePenalty:       getEnvAsIntOrDefault("DCC_MEDIUM_RANGE_PENALTY", defaults.MediumRangePenalty),
			LongRangeDieSteps:        getEnvAsIntOrDefault("DCC_LONG_RANGE_DIE_STEPS", defaults.LongRangeDieSteps),
		},
		Telemetry: TelemetryConfig{
			ServiceName: getEnvOrDefault("OTEL_SERVICE_NAME", "dcc-bot-discord"),
			Endpoint:    os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		},
	}

	// Validate required fields
	if cfg.Discord.Token == "" {
		return nil, fmt.Errorf("DISCORD_TOKEN is required")
	}
	if cfg.Discord.AppID == "" {
		return nil, fmt.Errorf("DISCORD_APP_ID is required")
	}
	if cfg.Rules.DeedSuccessThreshold < 1 {
		return nil, fmt.Errorf("DCC_DEED_THRESHOLD must be at least 1")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
