package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"desktoptoast/internal/config"
)

const consoleTimeFormat = "15:04:05.000"

// Logger 带文件句柄的日志器
type Logger struct {
	zerolog.Logger
	file *os.File
}

// New 创建控制台 + 文件日志，文件打不开时只写控制台
func New(cfg config.Log, console io.Writer) *Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	writers := []io.Writer{zerolog.ConsoleWriter{Out: console, TimeFormat: consoleTimeFormat}}

	var file *os.File
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err == nil {
			file, _ = os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		}
		if file != nil {
			writers = append(writers, file)
		}
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	l := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Logger()

	if cfg.File != "" && file == nil {
		l.Warn().Str("path", cfg.File).Msg("无法打开日志文件")
	}

	return &Logger{Logger: l, file: file}
}

// Close 关闭日志文件
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
