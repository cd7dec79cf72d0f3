package main

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"skyfire/internal/game"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	v := viper.New()
	v.SetConfigName("skyfire")
	v.AddConfigPath(".")
	v.SetEnvPrefix("SKYFIRE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("seed", 0)
	v.SetDefault("window.width", game.WindowWidth)
	v.SetDefault("window.height", game.WindowHeight)
	v.SetDefault("mute", false)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatal().Err(err).Msg("config file unreadable")
		}
	} else {
		log.Info().Str("file", v.ConfigFileUsed()).Msg("config loaded")
	}

	seed := v.GetUint64("seed")
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	// A [tuning] section overrides only the keys it names; everything else
	// keeps the stock values.
	tun := game.DefaultTuning()
	if v.IsSet("tuning") {
		if err := v.UnmarshalKey("tuning", tun); err != nil {
			log.Fatal().Err(err).Msg("bad tuning section")
		}
	}

	cfg := game.RunConfig{
		Seed:   seed,
		Width:  v.GetInt("window.width"),
		Height: v.GetInt("window.height"),
		Mute:   v.GetBool("mute"),
		Tun:    tun,
	}

	log.Info().Uint64("seed", seed).Msg("starting")
	if err := game.RunDesktop(cfg); err != nil {
		log.Fatal().Err(err).Msg("session ended with error")
	}
}
