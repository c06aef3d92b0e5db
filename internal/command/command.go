// Package command 提供各子命令共享的默认值、flags 与日志初始化。
package command

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-xcmacro/internal/config"
	"github.com/lwmacct/251207-go-pkg-xcmacro/pkg/cfgm"
)

const (
	// AppName 应用名称，用于默认配置文件路径。
	AppName = "xcmacro"
	// EnvPrefix 配置项的环境变量前缀。
	EnvPrefix = "XCMACRO_"
)

// Version 构建时通过 -ldflags "-X .../internal/command.Version=..." 注入。
var Version = "dev"

// Defaults 为默认配置的单一来源。
var Defaults = config.DefaultConfig()

// Load 加载配置并初始化日志。
//
// --config 显式指定配置文件时只读取该文件。
// expand.set 中的值是设置表的一层，保持原样交给 [config.ExpandConfig.Table] 合并后再展开。
func Load(cmd *cli.Command) (*config.Config, error) {
	opts := []cfgm.Option{cfgm.WithEnvPrefix(EnvPrefix), cfgm.WithRawKeys("expand.set")}
	if path := cmd.String("config"); path != "" {
		opts = append(opts, cfgm.WithConfigPaths(path))
	}

	cfg, err := cfgm.LoadCmd(cmd, config.DefaultConfig(), AppName, opts...)
	if err != nil {
		return nil, err
	}
	SetupLogger(cfg.Log, ErrWriter(cmd))

	return cfg, nil
}

// SetupLogger 按配置替换 slog 默认 logger，无法识别的级别按 info 处理。
func SetupLogger(cfg config.LogConfig, w io.Writer) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// Writer 返回根命令的标准输出。
func Writer(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}

	return os.Stdout
}

// ErrWriter 返回根命令的错误输出。
func ErrWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}

	return os.Stderr
}

// Reader 返回根命令的标准输入。
func Reader(cmd *cli.Command) io.Reader {
	if r := cmd.Root().Reader; r != nil {
		return r
	}

	return os.Stdin
}

// ConfigFlag --config，显式指定配置文件。
func ConfigFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "配置文件路径 (yaml/json)",
	}
}

// LogFlags 日志相关 flags。
func LogFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "log-level",
			Value: Defaults.Log.Level,
			Usage: "日志级别 (debug/info/warn/error)",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Value: Defaults.Log.Format,
			Usage: "日志格式 (text/json)",
		},
	}
}

// ExpandFlags 设置表来源相关 flags。
func ExpandFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "expand-settings",
			Aliases: []string{"s"},
			Usage:   "设置文件 (yaml/json/xcconfig)，可重复，后者覆盖前者",
		},
		&cli.StringMapFlag{
			Name:    "expand-set",
			Aliases: []string{"D"},
			Usage:   "内联设置 NAME=VALUE，可重复",
		},
		&cli.BoolFlag{
			Name:  "expand-environ",
			Usage: "以环境变量作为最底层设置",
		},
		&cli.IntFlag{
			Name:  "expand-max-depth",
			Value: Defaults.Expand.MaxDepth,
			Usage: "嵌套与递归深度上限",
		},
		&cli.IntFlag{
			Name:  "expand-budget",
			Value: Defaults.Expand.Budget,
			Usage: "单个模板的展开工作量上限 (输出字节数 + 引用数)，0 表示不限制",
		},
	}
}

// Inputs 返回待展开的模板：优先使用参数，没有参数时逐行读取标准输入。
func Inputs(cmd *cli.Command) ([]string, error) {
	if cmd.Args().Present() {
		return cmd.Args().Slice(), nil
	}

	content, err := io.ReadAll(Reader(cmd))
	if err != nil {
		return nil, err
	}

	text := strings.TrimSuffix(string(content), "\n")
	if text == "" {
		return nil, nil
	}

	return strings.Split(text, "\n"), nil
}
