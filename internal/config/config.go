package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	NetworkName string // display name of the monitored network
	NetworkAddr string // public address used in presence strings
	NetworkFile string // optional YAML file layered over env config ("" = disabled)

	// Upstream status endpoints
	MainURL      string // public multi-protocol status API for the proxy
	LobbyURL     string // internal core endpoint for the lobby shard
	CitybuildURL string // internal core endpoint for the citybuild shard

	ProbeTimeout     time.Duration // per-probe HTTP budget (default: 5s)
	CheckTimeout     time.Duration // outer budget for one full status check (default: 10s)
	CacheTTL         time.Duration // freshness window for memoized probe results (default: 15s)
	PresenceInterval time.Duration // how often the presence refresh loop runs (default: 60s)

	// Maintenance flag seeds (operator flags start from these at boot)
	MaintenanceMain      bool
	MaintenanceLobby     bool
	MaintenanceCitybuild bool

	// Redis (optional warm-start mirror; empty addr disables it)
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisDT             time.Duration // Redis dial timeout (ex: 5s)
	RedisRT             time.Duration // Redis read timeout (ex: 3s)
	RedisWT             time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait        time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize       int
	RedisConnectTimeout time.Duration // total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold  int           // warn after this many attempts

	AllowedHosts []string // optional, restrict access to specific Host headers
	AdminCIDRS   []string // optional, restrict operator endpoints to specific IPs/CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)

	// Rate limiting for the public status endpoint
	RateBurst        int
	RateRefillPerMin int
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("LYTH_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("LYTH_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("LYTH_LOG_LEVEL", "info"),
		PrettyLog: mustBool("LYTH_PRETTY_LOG", true),

		// Network identity
		NetworkName: getenv("LYTH_NETWORK_NAME", "Lythrion Network"),
		NetworkAddr: getenv("LYTH_NETWORK_ADDR", "Lythrion.net"),
		NetworkFile: getenv("LYTH_NETWORK_FILE", ""), // Optional, empty = env-only config

		// Upstream endpoints
		MainURL:      getenv("LYTH_MAIN_URL", "https://api.mcstatus.io/v2/status/java/lythrion.net"),
		LobbyURL:     getenv("LYTH_LOBBY_URL", "http://138.201.19.210:8765/status?token=ServiceLobbyStatus"),
		CitybuildURL: getenv("LYTH_CITYBUILD_URL", "http://138.201.19.210:8766/status?token=ServiceCBStatus"),

		// Budgets
		ProbeTimeout:     mustDuration("LYTH_PROBE_TIMEOUT", 5*time.Second),
		CheckTimeout:     mustDuration("LYTH_CHECK_TIMEOUT", 10*time.Second),
		CacheTTL:         mustDuration("LYTH_CACHE_TTL", 15*time.Second),
		PresenceInterval: mustDuration("LYTH_PRESENCE_INTERVAL", 60*time.Second),

		// Maintenance seeds
		MaintenanceMain:      mustBool("LYTH_MAINTENANCE_MAIN", false),
		MaintenanceLobby:     mustBool("LYTH_MAINTENANCE_LOBBY", false),
		MaintenanceCitybuild: mustBool("LYTH_MAINTENANCE_CITYBUILD", false),

		// Redis settings
		RedisAddr:           getenv("LYTH_REDIS_ADDR", ""),
		RedisUser:           getenv("LYTH_REDIS_USERNAME", "default"),
		RedisPassword:       getenv("LYTH_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("LYTH_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("LYTH_ALLOWED_HOSTS", "")),
		AdminCIDRS:   splitAndTrim(getenv("LYTH_ADMIN_CIDRS", "")),
		TrustProxy:   mustBool("LYTH_TRUST_PROXY", true),

		// Rate limiting
		RateBurst:        getenvInt("LYTH_RATE_BURST", 10),
		RateRefillPerMin: getenvInt("LYTH_RATE_REFILL_PER_MIN", 30),
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfg.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
