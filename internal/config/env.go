package config

import (
	"os"
	"strconv"
	"strings"
)

// applyEnv overlays the environment variable surface onto the YAML config.
// Environment values win over file values.
func (c *AppConfig) applyEnv() {
	setString(&c.Env, "ENV")
	setInt(&c.Port, "PORT")

	setString(&c.Database.Host, "DB_HOST")
	setInt(&c.Database.Port, "DB_PORT")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.Name, "DB_NAME")

	setString(&c.LLM.Host, "LLM_HOST")
	setInt(&c.LLM.Port, "LLM_PORT")
	setString(&c.LLM.Model, "LLM_MODEL")
	setString(&c.LLM.APIKey, "LLM_API_KEY")
	setInt(&c.LLM.TimeoutSeconds, "LLM_TIMEOUT")
	setString(&c.LLM.PromptTemplate, "LLM_PROMPT_SUMMARY")

	setInt(&c.Cache.ExpirationSeconds, "CACHE_EXPIRATION_DURATION")
	setInt(&c.Cache.DeleteExpiredInterval, "CACHE_DELETE_EXPIRED_INTERVAL")

	setInt(&c.Search.SnippetLength, "SEARCH_SNIPPET_LENGTH")

	if v, ok := os.LookupEnv("ALLOWED_ORIGINS"); ok {
		origins := make([]string, 0)
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.AllowedOrigins = origins
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			*dst = n
		}
	}
}
