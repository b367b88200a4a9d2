// Package config 提供了统一的配置加载与管理能力.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/wyfcoding/unionfind/logging"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config 全局顶级配置结构.
type Config struct {
	Version   string          `mapstructure:"version"   toml:"version"`
	Log       LogConfig       `mapstructure:"log"       toml:"log"`
	Metrics   MetricsConfig   `mapstructure:"metrics"   toml:"metrics"`
	UnionFind UnionFindConfig `mapstructure:"unionfind" toml:"unionfind"`
	Successor SuccessorConfig `mapstructure:"successor" toml:"successor"`
}

// LogConfig 定义日志输出、级别与切割策略.
type LogConfig struct {
	Level      string `mapstructure:"level"       toml:"level"       validate:"omitempty,oneof=debug info warn error"` // 日志级别。
	Format     string `mapstructure:"format"      toml:"format"      validate:"omitempty,oneof=json text"`             // 日志格式。
	Output     string `mapstructure:"output"      toml:"output"      validate:"omitempty,oneof=stdout file both"`      // 日志输出目标。
	File       string `mapstructure:"file"        toml:"file"`                                                         // 日志文件路径。
	MaxSize    int    `mapstructure:"max_size"    toml:"max_size"    validate:"min=0"`                                 // 单个文件最大大小 (MB)。
	MaxBackups int    `mapstructure:"max_backups" toml:"max_backups" validate:"min=0"`                                 // 最大备份数。
	MaxAge     int    `mapstructure:"max_age"     toml:"max_age"     validate:"min=0"`                                 // 最大保留天数。
	Compress   bool   `mapstructure:"compress"    toml:"compress"`                                                     // 是否启用压缩。
}

// MetricsConfig 指标暴露配置.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" toml:"enabled"`
	Port    string `mapstructure:"port"    toml:"port"    validate:"omitempty,numeric"`
}

// UnionFindConfig 并查集实例配置.
type UnionFindConfig struct {
	Variant      string `mapstructure:"variant"      toml:"variant"      validate:"omitempty,oneof=quick_find quick_union weighted_quick_union path_compression weighted_path_compression"`
	Size         int    `mapstructure:"size"         toml:"size"         validate:"min=0"`
	Synchronized bool   `mapstructure:"synchronized" toml:"synchronized"` // 是否加互斥锁以支持并发调用。
	Instrument   bool   `mapstructure:"instrument"   toml:"instrument"`   // 是否记录操作指标。
}

// SuccessorConfig 后继删除结构配置.
type SuccessorConfig struct {
	Size         int  `mapstructure:"size"         toml:"size"         validate:"min=1"`
	Synchronized bool `mapstructure:"synchronized" toml:"synchronized"`
	Instrument   bool `mapstructure:"instrument"   toml:"instrument"`
}

// LoggingConfig 将日志配置转换为 logging 包的配置.
func (c *Config) LoggingConfig(service, module string) logging.Config {
	return logging.Config{
		Service:    service,
		Module:     module,
		Level:      c.Log.Level,
		Format:     c.Log.Format,
		Output:     c.Log.Output,
		File:       c.Log.File,
		MaxSize:    c.Log.MaxSize,
		MaxBackups: c.Log.MaxBackups,
		MaxAge:     c.Log.MaxAge,
		Compress:   c.Log.Compress,
	}
}

var (
	mu        sync.RWMutex
	vInstance = viper.New()
	onReload  []func(*Config)
)

// RegisterReloadHook 注册配置热更新回调。
func RegisterReloadHook(hook func(*Config)) {
	if hook == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	onReload = append(onReload, hook)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("metrics.port", "9090")
	v.SetDefault("unionfind.variant", "weighted_path_compression")
	v.SetDefault("successor.size", 1)
}

// Load 读取 TOML 配置文件，叠加 APP_ 前缀的环境变量，校验后开启热更新监听.
func Load(path string, conf any) error {
	return load(path, conf, true)
}

// LoadOnce 与 Load 相同但不监听文件变化.
func LoadOnce(path string, conf any) error {
	return load(path, conf, false)
}

func load(path string, conf any, watch bool) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config error: %w", err)
	}

	if err := v.Unmarshal(conf); err != nil {
		return fmt.Errorf("unmarshal config error: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(conf); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	mu.Lock()
	vInstance = v
	mu.Unlock()

	if !watch {
		return nil
	}

	v.OnConfigChange(func(event fsnotify.Event) {
		slog.Info("detecting config change", "file", event.Name)
		const debounceTimeout = 500 * time.Millisecond
		time.Sleep(debounceTimeout)

		// 编辑器常常先截断再写入，防抖后重新读取以拿到完整内容。
		if readErr := v.ReadInConfig(); readErr != nil {
			slog.Error("reload config read failed", "error", readErr)

			return
		}
		if unmarshalErr := v.Unmarshal(conf); unmarshalErr != nil {
			slog.Error("reload config unmarshal failed", "error", unmarshalErr)

			return
		}

		if validateErr := validate.Struct(conf); validateErr != nil {
			slog.Error("reload config validation failed", "error", validateErr)

			return
		}

		cfg, ok := conf.(*Config)
		if !ok {
			slog.Info("config hot-reloaded and validated successfully")

			return
		}
		// 日志级别可在线切换；结构规模与实现只在构建时生效。
		logging.SetLevel(cfg.Log.Level)
		slog.Info("config hot-reloaded and validated successfully", "log_level", cfg.Log.Level)

		mu.RLock()
		hooks := append([]func(*Config){}, onReload...)
		mu.RUnlock()
		for _, hook := range hooks {
			hook(cfg)
		}
	})
	v.WatchConfig()

	return nil
}

// PrintWithMask 脱敏打印当前配置.
func PrintWithMask(conf any) {
	data, err := json.Marshal(conf)
	if err != nil {
		slog.Error("failed to marshal config for printing", "error", err)

		return
	}

	var configMap map[string]any
	if unmarshalErr := json.Unmarshal(data, &configMap); unmarshalErr != nil {
		slog.Error("failed to unmarshal config for masking", "error", unmarshalErr)

		return
	}

	mask(configMap)

	maskedJSON, marshalErr := json.MarshalIndent(configMap, "  ", "  ")
	if marshalErr != nil {
		slog.Error("failed to marshal masked config", "error", marshalErr)

		return
	}

	slog.Info("Current effective configuration", "config", string(maskedJSON))
}

func mask(configMap map[string]any) {
	sensitiveKeys := []string{"password", "secret", "dsn", "key", "token"}

	for key, val := range configMap {
		if subMap, ok := val.(map[string]any); ok {
			mask(subMap)

			continue
		}

		for _, sensitiveKey := range sensitiveKeys {
			if strings.Contains(strings.ToLower(key), sensitiveKey) {
				configMap[key] = "******"

				break
			}
		}
	}
}

// GetViper 返回最近一次加载所使用的 Viper 实例.
func GetViper() *viper.Viper {
	mu.RLock()
	defer mu.RUnlock()
	return vInstance
}
