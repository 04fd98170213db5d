package commands

import (
	"os"
	"time"

	"github.com/bluedragon-network/sipnav-go/pkg/sipnav"
	"github.com/rs/zerolog"
)

// cliLogger adapts a zerolog logger to the sipnav.Logger interface.
type cliLogger struct {
	log zerolog.Logger
}

// NewCLILogger returns a console-format zerolog logger for --verbose runs.
func NewCLILogger() sipnav.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}

	return &cliLogger{
		log: zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger(),
	}
}

func (l *cliLogger) Debug(msg string, fields map[string]interface{}) {
	l.log.Debug().Fields(fields).Msg(msg)
}

func (l *cliLogger) Info(msg string, fields map[string]interface{}) {
	l.log.Info().Fields(fields).Msg(msg)
}

func (l *cliLogger) Warn(msg string, fields map[string]interface{}) {
	l.log.Warn().Fields(fields).Msg(msg)
}

func (l *cliLogger) Error(msg string, fields map[string]interface{}) {
	l.log.Error().Fields(fields).Msg(msg)
}
