package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config 全局日志配置
type Config struct {
	Level   string    // debug / info / warn ...，为空时取 info
	Output  io.Writer // 默认 os.Stderr
	Pretty  bool      // 开发环境下使用可读的控制台输出
	Service string
}

const defaultService = "evotrade"

var (
	mu   sync.RWMutex
	base = build(Config{})
)

// Configure 替换全局 logger，可多次调用（配置加载完成后会再次调用）
func Configure(cfg Config) {
	l := build(cfg)
	mu.Lock()
	base = l
	mu.Unlock()
}

func build(cfg Config) zerolog.Logger {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		if parsed, err := zerolog.ParseLevel(cfg.Level); err == nil {
			level = parsed
		}
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	var w io.Writer = cfg.Output
	if w == nil {
		w = os.Stderr
	}
	if cfg.Pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	service := cfg.Service
	if service == "" {
		service = defaultService
	}
	return zerolog.New(w).With().Timestamp().Str("service", service).Logger()
}

func Base() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// WithComponent 返回带 component 字段的子 logger
func WithComponent(component string) zerolog.Logger {
	return Base().With().Str("component", component).Logger()
}
