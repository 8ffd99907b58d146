package config

import (
	"io"
	"log/slog"
	"os"
)

// InitLogger instala o logger JSON em stdout como default do slog.
func InitLogger(level slog.Level) *slog.Logger {
	return InitLoggerTo(os.Stdout, level)
}

// InitLoggerTo é usado pela CLI, que reserva stdout para a saída dos comandos.
func InitLoggerTo(w io.Writer, level slog.Level) *slog.Logger {
	l := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(l) // permite usar slog.Info/Error globalmente
	return l
}
