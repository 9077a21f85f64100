// Package logging configures the global zerolog logger.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/config"
)

// Setup configures the global logger from cfg and writes to out.
// The "human" format uses the console writer; anything else logs JSON.
// An unknown level falls back to info.
func Setup(cfg config.LoggingConfig, out io.Writer) {
	if out == nil {
		out = os.Stdout
	}

	output := out
	if strings.EqualFold(cfg.Format, "human") {
		output = zerolog.ConsoleWriter{Out: out}
	}

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Logger = log.Output(output).With().Timestamp().Logger()

	if err != nil {
		log.Warn().Str("level", cfg.Level).Msg("unknown log level, using info")
	}
}
