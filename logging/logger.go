// Package logging 提供了统一的结构化日志（slog）封装，支持日志切割、多目标输出与OpenTelemetry追踪上下文注入。
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"go.opentelemetry.io/otel/trace" // OpenTelemetry追踪
)

const (
	// OutputStdout 仅输出到标准输出。
	OutputStdout = "stdout"
	// OutputFile 仅输出到文件。
	OutputFile = "file"
	// OutputBoth 同时输出到标准输出与文件。
	OutputBoth = "both"
)

var (
	// defaultLogger 是全局默认的Logger实例，采用单例模式。
	defaultLogger *Logger
	// once 用于确保InitLogger函数只被执行一次，保证defaultLogger的单例性。
	once sync.Once
	// level 由所有 Logger 共享，支持运行时热更新日志级别。
	level = new(slog.LevelVar)
)

// Config 定义日志配置
type Config struct {
	Service    string
	Module     string
	Level      string
	Format     string // json 或 text，默认 json
	Output     string // stdout、file 或 both；File 非空且 Output 为空时视为 file
	File       string // 日志文件路径
	MaxSize    int    // 每个日志文件最大尺寸 (MB)
	MaxBackups int    // 保留旧日志文件的最大个数
	MaxAge     int    // 保留旧日志文件的最大天数
	Compress   bool   // 是否压缩旧日志
}

// Logger 结构体封装了原生的 `*slog.Logger`，并添加了服务名和模块名，方便在日志中区分来源。
type Logger struct {
	*slog.Logger
	Service string // 服务名称
	Module  string // 模块名称

	closer io.Closer
}

// TraceHandler 是一个自定义的 `slog.Handler` 装饰器，用于从 `context.Context` 中提取并注入 `trace_id` 和 `span_id` 到日志记录中。
type TraceHandler struct {
	slog.Handler
}

// Handle 在处理日志记录之前尝试从上下文获取 SpanContext，有效时追加 trace_id 和 span_id。
func (h *TraceHandler) Handle(ctx context.Context, r slog.Record) error {
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", spanCtx.TraceID().String()),
			slog.String("span_id", spanCtx.SpanID().String()),
		)
	}
	return h.Handler.Handle(ctx, r)
}

// WithAttrs 保持装饰器在派生 Handler 上仍然生效。
func (h *TraceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TraceHandler{Handler: h.Handler.WithAttrs(attrs)}
}

// WithGroup 保持装饰器在派生 Handler 上仍然生效。
func (h *TraceHandler) WithGroup(name string) slog.Handler {
	return &TraceHandler{Handler: h.Handler.WithGroup(name)}
}

// ParseLevel 将字符串级别映射为 slog.Level，未知值按 info 处理。
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetLevel 在运行时调整所有 Logger 的输出级别。
func SetLevel(s string) {
	level.Set(ParseLevel(s))
}

// Level 返回当前生效的日志级别。
func Level() slog.Level {
	return level.Level()
}

// NewFromConfig 创建一个新的Logger实例。
// 支持通过 Config 结构体配置日志切割。
func NewFromConfig(cfg Config) *Logger {
	level.Set(ParseLevel(cfg.Level))

	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Key = "timestamp"
			}
			return a
		},
	}
	newHandler := func(w io.Writer) slog.Handler {
		if cfg.Format == "text" {
			return slog.NewTextHandler(w, opts)
		}
		return slog.NewJSONHandler(w, opts)
	}

	output := cfg.Output
	if output == "" {
		output = OutputStdout
		if cfg.File != "" {
			output = OutputFile
		}
	}

	var (
		handler slog.Handler
		closer  io.Closer
	)
	if cfg.File != "" && output != OutputStdout {
		// 配置了文件路径时使用 lumberjack 进行日志切割
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize, // MB
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge, // days
			Compress:   cfg.Compress,
		}
		closer = fileWriter
		handler = newHandler(fileWriter)
		if output == OutputBoth {
			handler = newMultiHandler(newHandler(os.Stdout), handler)
		}
	} else {
		handler = newHandler(os.Stdout)
	}

	logger := slog.New(&TraceHandler{Handler: handler}).With(
		slog.String("service", cfg.Service),
		slog.String("module", cfg.Module),
	)

	return &Logger{
		Logger:  logger,
		Service: cfg.Service,
		Module:  cfg.Module,
		closer:  closer,
	}
}

// Close 关闭底层文件输出（如果有）。
func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// NewLogger 是创建一个带有简单参数的 logger 的兼容别名。
func NewLogger(service, module string, level ...string) *Logger {
	lvl := "info"
	if len(level) > 0 {
		lvl = level[0]
	}
	return NewFromConfig(Config{
		Service: service,
		Module:  module,
		Level:   lvl,
	})
}

// InitLogger 初始化全局默认日志记录器
func InitLogger(service, module string, level ...string) {
	once.Do(func() {
		lvl := "info"
		if len(level) > 0 {
			lvl = level[0]
		}
		defaultLogger = NewFromConfig(Config{
			Service: service,
			Module:  module,
			Level:   lvl,
		})
		slog.SetDefault(defaultLogger.Logger)
	})
}

// SetDefault 用给定的 Logger 替换全局默认日志记录器。
func SetDefault(l *Logger) {
	if l == nil {
		return
	}
	once.Do(func() {})
	defaultLogger = l
	slog.SetDefault(l.Logger)
}

// EnsureDefaultLogger 确保默认日志记录器已初始化
func EnsureDefaultLogger() {
	if defaultLogger == nil {
		InitLogger("default", "default", "info")
	}
}

// Default 返回默认日志记录器实例
func Default() *Logger {
	EnsureDefaultLogger()
	return defaultLogger
}

// Info 记录 Info 级别日志
func Info(ctx context.Context, msg string, args ...any) {
	EnsureDefaultLogger()
	defaultLogger.InfoContext(ctx, msg, args...)
}

// Warn 记录 Warn 级别日志
func Warn(ctx context.Context, msg string, args ...any) {
	EnsureDefaultLogger()
	defaultLogger.WarnContext(ctx, msg, args...)
}

// Error 记录 Error 级别日志
func Error(ctx context.Context, msg string, args ...any) {
	EnsureDefaultLogger()
	defaultLogger.ErrorContext(ctx, msg, args...)
}

// Debug 记录 Debug 级别日志
func Debug(ctx context.Context, msg string, args ...any) {
	EnsureDefaultLogger()
	defaultLogger.DebugContext(ctx, msg, args...)
}

// LogDuration 记录操作耗时
func LogDuration(ctx context.Context, operation string, args ...any) func() {
	start := time.Now()
	return func() {
		logArgs := append(args, "duration", time.Since(start))
		Info(ctx, fmt.Sprintf("%s finished", operation), logArgs...)
	}
}
