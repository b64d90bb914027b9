package config

import "time"

// Config is the root application configuration.
type Config struct {
	Notion NotionConfig `yaml:"notion"`
	Bot    BotConfig    `yaml:"bot"`
	Cache  CacheConfig  `yaml:"cache"`
	Log    LogConfig    `yaml:"log"`
	Ops    OpsConfig    `yaml:"ops"`
}

// NotionConfig holds content-store access settings. Token and both
// collection ids are required; their absence is a startup error, never
// a runtime one.
type NotionConfig struct {
	Token             string        `yaml:"token"               env:"NOTION_TOKEN"         env-required:"true"`
	PeopleDatabaseID  string        `yaml:"people_database_id"  env:"PEOPLE_DATABASE_ID"   env-required:"true"`
	ChannelDatabaseID string        `yaml:"channel_database_id" env:"CHANNEL_DATABASE_ID"  env-required:"true"`
	Timeout           time.Duration `yaml:"timeout"             env:"NOTION_TIMEOUT"       env-default:"10s"`
}

// BotConfig holds chat-gateway settings.
type BotConfig struct {
	Token       string        `yaml:"token"        env:"BOT_TOKEN"        env-required:"true"`
	PollTimeout time.Duration `yaml:"poll_timeout" env:"BOT_POLL_TIMEOUT" env-default:"30s"`
	SendRate    float64       `yaml:"send_rate"    env:"BOT_SEND_RATE"    env-default:"25"`
	SendBurst   int           `yaml:"send_burst"   env:"BOT_SEND_BURST"   env-default:"5"`
}

// CacheConfig bounds the staleness and size of the resolver caches.
type CacheConfig struct {
	TTLSeconds   int `yaml:"ttl_seconds"   env:"TTL_SECONDS"         env-default:"600"`
	UserCapacity int `yaml:"user_capacity" env:"CACHE_USER_CAPACITY" env-default:"100"`
}

// TTL returns the entry time-to-live as a duration.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// OpsConfig holds the operational HTTP listener settings. An empty
// address disables the listener.
type OpsConfig struct {
	Addr string `yaml:"addr" env:"OPS_ADDR" env-default:""`
}
