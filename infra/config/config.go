package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Path is the directory holding the json config files.
var Path = "infra/config"

// Load loads the config for the given key into v.
func Load(key string, v interface{}) error {
	b, err := os.ReadFile(fmt.Sprintf("%s/%s.json", Path, key))
	if err != nil {
		return fmt.Errorf("could not load config for %s: %w", key, err)
	}
	err = json.Unmarshal(b, v)
	if err != nil {
		return fmt.Errorf("could not unmarshal the config for %s: %w", key, err)
	}
	log.Info().Str("config", key).Msg("loaded default config")
	return nil
}

// MustLoad loads the config for the given key
func MustLoad(key string, v interface{}) {
	if err := Load(key, v); err != nil {
		panic(err.Error())
	}
}

// LoadEnv loads the given .env files into the environment, if present.
// Variables already set in the environment take precedence.
func LoadEnv(files ...string) {
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			log.Warn().Err(err).Str("file", file).Msg("could not load env file")
			continue
		}
		log.Info().Str("file", file).Msg("loaded env file")
	}
}
