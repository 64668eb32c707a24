package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger define a interface para logging estruturado.
// A aplicação (Handler, Service) deve depender apenas desta interface.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error)
	Fatal(msg string, err error)
}

// SlogLogger é a implementação concreta da interface Logger sobre log/slog,
// com saída JSON estruturada.
type SlogLogger struct {
	l    *slog.Logger
	exit func(code int)
}

// NewLogger cria e retorna uma nova instância do Logger escrevendo em stdout.
// Esta função é chamada no main.go.
func NewLogger(level string) Logger {
	return NewLoggerWithWriter(os.Stdout, level)
}

// NewLoggerWithWriter permite redirecionar a saída (usado nos testes).
func NewLoggerWithWriter(w io.Writer, level string) Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	return &SlogLogger{l: slog.New(handler), exit: os.Exit}
}

// NewNopLogger descarta todas as entradas.
func NewNopLogger() Logger {
	return NewLoggerWithWriter(io.Discard, "error")
}

// parseLevel converte o LOG_LEVEL da configuração. Valores desconhecidos viram info.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "fatal":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (s *SlogLogger) log(level slog.Level, msg string, fields map[string]interface{}, err error) {
	if !s.l.Enabled(context.Background(), level) {
		return
	}
	attrs := make([]slog.Attr, 0, len(fields)+1)
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.l.LogAttrs(context.Background(), level, msg, attrs...)
}

// Implementações da Interface Logger

func (s *SlogLogger) Debug(msg string, fields map[string]interface{}) {
	s.log(slog.LevelDebug, msg, fields, nil)
}

func (s *SlogLogger) Info(msg string, fields map[string]interface{}) {
	s.log(slog.LevelInfo, msg, fields, nil)
}

func (s *SlogLogger) Warn(msg string, fields map[string]interface{}) {
	s.log(slog.LevelWarn, msg, fields, nil)
}

func (s *SlogLogger) Error(msg string, err error) {
	s.log(slog.LevelError, msg, nil, err)
}

// Fatal registra o erro e encerra o processo.
func (s *SlogLogger) Fatal(msg string, err error) {
	s.log(slog.LevelError, msg, map[string]interface{}{"fatal": true}, err)
	s.exit(1)
}
