package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/kotrzina/gas-wizard/pkg/gwgp"
	"github.com/kotrzina/gas-wizard/pkg/utils"
)

type Config struct {
	Debug bool

	SourceURL     string
	ParserBackend string // xpath or css

	HTTPPort int

	Store     string // redis, postgres or memory
	RedisAddr string
	RedisDB   int
	DBString  string

	WhatsAppEnabled  bool
	WhatsAppDebugJid string   // all replies go here in debug mode
	AdminJids        []string // allowed to see lookup stats

	CommandPrefix string
	DiscordHook   string
}

func NewConfig() *Config {
	return &Config{
		Debug: getBoolEnvDefault("DEBUG", false),

		SourceURL:     getStringEnvDefault("SOURCE_URL", gwgp.SourceURL),
		ParserBackend: getStringEnvDefault("PARSER_BACKEND", gwgp.SelectorXPath),

		HTTPPort: getIntEnvDefault("HTTP_PORT", 8080),

		Store:     getStringEnvDefault("STORE", "memory"),
		RedisAddr: getStringEnvDefault("REDIS_ADDR", "localhost:6379"),
		RedisDB:   getIntEnvDefault("REDIS_DB", 0),
		DBString:  getStringEnvDefault("DB_STRING", "host=localhost port=5432 user=postgres password=admin dbname=gwgp sslmode=disable"),

		WhatsAppEnabled:  getBoolEnvDefault("WHATSAPP_ENABLED", false),
		WhatsAppDebugJid: getStringEnvDefault("WHATSAPP_DEBUG_JID", ""),
		AdminJids:        utils.SplitList(getStringEnvDefault("ADMIN_JIDS", "")),

		CommandPrefix: getStringEnvDefault("COMMAND_PREFIX", "~"),
		DiscordHook:   getStringEnvDefault("DISCORD_HOOK", ""),
	}
}

// IsAdmin reports whether the chat id is listed in ADMIN_JIDS
func (c *Config) IsAdmin(jid string) bool {
	for _, admin := range c.AdminJids {
		if admin == jid {
			return true
		}
	}

	return false
}

func getBoolEnvDefault(key string, defaultValue bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}

	fmt.Printf("Using default value for %s\n", key)
	return defaultValue
}

func getStringEnvDefault(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	fmt.Printf("Using default value for %s\n", key)
	return defaultValue
}

func getIntEnvDefault(key string, defaultValue int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}

	fmt.Printf("Using default value for %s\n", key)
	return defaultValue
}
