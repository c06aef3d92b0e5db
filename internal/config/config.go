// Package config 提供应用配置管理。
//
// 配置加载优先级 (从低到高)：
//  1. 默认值 - DefaultConfig() 函数中定义
//  2. 配置文件 - .xcmacro.yaml / ~/.xcmacro.yaml / /etc/xcmacro/config.yaml 等，或 --config 指定
//  3. 环境变量 - XCMACRO_ 前缀
//  4. CLI flags
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/lwmacct/251207-go-pkg-xcmacro/pkg/settings"
	"github.com/lwmacct/251207-go-pkg-xcmacro/pkg/xcmacro"
)

// Config 应用配置。
type Config struct {
	Expand ExpandConfig `json:"expand" desc:"展开配置"`
	Server ServerConfig `json:"server" desc:"服务端配置"`
	Client ClientConfig `json:"client" desc:"客户端配置"`
	Log    LogConfig    `json:"log" desc:"日志配置"`
}

// ExpandConfig 设置表来源与展开选项。
type ExpandConfig struct {
	Settings []string          `json:"settings" desc:"设置文件 (yaml/json/xcconfig)，后者覆盖前者"`
	Set      map[string]string `json:"set" desc:"内联设置，优先级最高"`
	Environ  bool              `json:"environ" desc:"以环境变量作为最底层设置"`
	MaxDepth int               `json:"max-depth" desc:"嵌套与递归深度上限"`
	Budget   int               `json:"budget" desc:"单个模板的展开工作量上限，0 表示不限制"`
}

// DefaultBudget 默认的展开工作量上限，约为 1MiB 输出。
const DefaultBudget = 1 << 20

// ServerConfig 服务端配置。
type ServerConfig struct {
	Addr     string        `json:"addr" desc:"服务器监听地址"`
	Timeout  time.Duration `json:"timeout" desc:"HTTP 读写超时"`
	Idletime time.Duration `json:"idletime" desc:"HTTP 空闲超时"`
}

// ClientConfig 客户端配置。
type ClientConfig struct {
	URL     string        `json:"url" desc:"服务器地址"`
	Timeout time.Duration `json:"timeout" desc:"请求超时时间"`
}

// LogConfig 日志配置。
type LogConfig struct {
	Level  string `json:"level" desc:"日志级别 (debug/info/warn/error)"`
	Format string `json:"format" desc:"日志格式 (text/json)"`
}

// DefaultConfig 返回默认配置。
// 注意：internal/command/command.go 中的 Defaults 变量引用此函数以实现单一配置来源。
func DefaultConfig() Config {
	return Config{
		Expand: ExpandConfig{
			MaxDepth: xcmacro.DefaultMaxDepth,
			Budget:   DefaultBudget,
		},
		Server: ServerConfig{
			Addr:     ":40117",
			Timeout:  15 * time.Second,
			Idletime: 60 * time.Second,
		},
		Client: ClientConfig{
			URL:     "http://localhost:40117",
			Timeout: 30 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Table 按 环境变量 → 设置文件 → 内联设置 的顺序构建设置表。
func (c ExpandConfig) Table() (xcmacro.Table, error) {
	var layers []xcmacro.Table
	if c.Environ {
		layers = append(layers, settings.FromEnviron(os.Environ()))
	}

	files, err := settings.Load(c.Settings...)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	layers = append(layers, files, c.Set)

	return settings.Merge(layers...), nil
}

// Options 返回对应的展开选项。
func (c ExpandConfig) Options() []xcmacro.Option {
	return []xcmacro.Option{xcmacro.WithMaxDepth(c.MaxDepth), xcmacro.WithBudget(c.Budget)}
}
