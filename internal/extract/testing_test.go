package extract

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/hprasetyo/finbot/internal/logger"
)

func testLogger() zerolog.Logger {
	return logger.NewWithWriter(io.Discard)
}
