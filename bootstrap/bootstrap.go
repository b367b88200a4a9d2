// Package bootstrap 按配置初始化日志与指标，并构建配置指定的数据结构.
package bootstrap

import (
	"github.com/wyfcoding/unionfind/algorithm/successor"
	"github.com/wyfcoding/unionfind/algorithm/unionfind"
	"github.com/wyfcoding/unionfind/config"
	"github.com/wyfcoding/unionfind/logging"
	"github.com/wyfcoding/unionfind/metrics"
	"github.com/wyfcoding/unionfind/xerrors"
)

// Bootstrapper 处理通用基础设施的初始化
type Bootstrapper struct {
	ServiceName string
	Version     string
	Config      *config.Config
	Logger      *logging.Logger
	Metrics     *metrics.Metrics // 配置未启用指标时为 nil
}

// New 创建一个新的引导器实例
func New(serviceName, version string) *Bootstrapper {
	return &Bootstrapper{
		ServiceName: serviceName,
		Version:     version,
	}
}

// Initialize 加载配置文件，再按 [log] 与 [metrics] 重建日志与指标.
// watch 为 true 时开启配置热更新，日志级别随文件变化生效。
func (b *Bootstrapper) Initialize(path string, watch bool) error {
	// 1. 临时初始化 Logger（用于记录配置加载过程中的潜在错误）。
	logging.InitLogger(b.ServiceName, "bootstrap")
	b.Logger = logging.Default()

	// 2. 加载配置文件：读取 TOML 文件并映射到 Config 中。
	cfg := &config.Config{}
	load := config.LoadOnce
	if watch {
		load = config.Load
	}
	if err := load(path, cfg); err != nil {
		b.Logger.Error("failed to load config", "path", path, "error", err)
		return xerrors.ErrInvalidConfig.Derive().WithContext("path", path).WithDetail("%v", err)
	}
	b.Config = cfg

	// 3. 使用配置重新初始化 Logger。
	b.Logger = logging.NewFromConfig(cfg.LoggingConfig(b.ServiceName, "unionfind"))
	logging.SetDefault(b.Logger)
	config.PrintWithMask(cfg)

	// 4. 按需初始化指标。
	if cfg.Metrics.Enabled {
		b.Metrics = metrics.NewMetrics(b.ServiceName)
		version := b.Version
		if version == "" {
			version = cfg.Version
		}
		b.Metrics.RegisterBuildInfo(b.ServiceName, version)
	}

	b.Logger.Info("bootstrap completed",
		"variant", cfg.UnionFind.Variant,
		"unionfind_size", cfg.UnionFind.Size,
		"successor_size", cfg.Successor.Size,
		"metrics", cfg.Metrics.Enabled)
	return nil
}

// UnionFind 按 [unionfind] 配置构建并查集，依次叠加指标与加锁包装.
func (b *Bootstrapper) UnionFind() (unionfind.UnionFind, error) {
	if b.Config == nil {
		return nil, xerrors.ErrInvalidConfig.Derive().WithDetail("Initialize must be called first")
	}
	c := b.Config.UnionFind

	variant, err := unionfind.ParseVariant(c.Variant)
	if err != nil {
		return nil, err
	}
	uf, err := unionfind.New(variant, c.Size)
	if err != nil {
		return nil, err
	}
	if c.Instrument {
		uf = unionfind.Instrument(uf, string(variant), b.Metrics)
	}
	if c.Synchronized {
		uf = unionfind.Synchronized(uf)
	}

	b.Logger.Info("unionfind built", "variant", variant, "size", c.Size,
		"instrument", c.Instrument && b.Metrics != nil, "synchronized", c.Synchronized)
	return uf, nil
}

// Successor 按 [successor] 配置构建后继删除结构.
func (b *Bootstrapper) Successor() (successor.Set, error) {
	if b.Config == nil {
		return nil, xerrors.ErrInvalidConfig.Derive().WithDetail("Initialize must be called first")
	}
	c := b.Config.Successor

	s, err := successor.New(c.Size)
	if err != nil {
		return nil, err
	}
	var set successor.Set = s
	if c.Instrument {
		set = successor.Instrument(set, "successor", b.Metrics)
	}
	if c.Synchronized {
		set = successor.Synchronized(set)
	}

	b.Logger.Info("successor built", "size", c.Size,
		"instrument", c.Instrument && b.Metrics != nil, "synchronized", c.Synchronized)
	return set, nil
}

// ServeMetrics 在配置的端口暴露 /metrics，返回关闭函数；未启用指标时返回空函数.
func (b *Bootstrapper) ServeMetrics() func() {
	if b.Metrics == nil || b.Config == nil {
		return func() {}
	}
	b.Logger.Info("serving metrics", "port", b.Config.Metrics.Port)
	return b.Metrics.ExposeHttp(b.Config.Metrics.Port)
}

// Close 释放日志文件等资源.
func (b *Bootstrapper) Close() error {
	return b.Logger.Close()
}
