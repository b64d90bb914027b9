package config

import "fmt"

// Validate performs business-rule validation on the loaded
// configuration. Load calls it automatically.
func (c *Config) Validate() error {
	if c.Cache.TTLSeconds <= 0 {
		return fmt.Errorf("cache.ttl_seconds must be > 0 (got %d)", c.Cache.TTLSeconds)
	}
	if c.Cache.UserCapacity <= 0 {
		return fmt.Errorf("cache.user_capacity must be > 0 (got %d)", c.Cache.UserCapacity)
	}
	if c.Notion.Timeout <= 0 {
		return fmt.Errorf("notion.timeout must be > 0 (got %v)", c.Notion.Timeout)
	}
	if c.Bot.PollTimeout <= 0 {
		return fmt.Errorf("bot.poll_timeout must be > 0 (got %v)", c.Bot.PollTimeout)
	}
	if c.Bot.SendRate <= 0 {
		return fmt.Errorf("bot.send_rate must be > 0 (got %v)", c.Bot.SendRate)
	}
	if c.Bot.SendBurst <= 0 {
		return fmt.Errorf("bot.send_burst must be > 0 (got %d)", c.Bot.SendBurst)
	}
	return nil
}
