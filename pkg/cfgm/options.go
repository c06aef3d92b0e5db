package cfgm

import "github.com/urfave/cli/v3"

// options 配置加载选项。
type options struct {
	cmd                 *cli.Command
	appName             string // 应用名称，用于生成默认配置路径
	baseDir             string // 相对路径的基准目录，空字符串表示当前工作目录
	envPrefix           string
	configPaths         []string
	noTemplateExpansion bool                // 是否禁用字符串展开（默认启用）
	rawKeys             map[string]struct{} // 不做展开的 key 路径
}

// Option 配置加载选项函数。
type Option func(*options)

// WithCommand 绑定 CLI 命令，读取显式设置的 flags 以覆盖配置（最高优先级）。
func WithCommand(cmd *cli.Command) Option {
	return func(o *options) {
		o.cmd = cmd
	}
}

// WithAppName 设置应用名称，用于生成默认搜索路径（见 [DefaultPaths]）。
func WithAppName(name string) Option {
	return func(o *options) {
		o.appName = name
	}
}

// WithConfigPaths 设置配置文件搜索路径。
//
// 按顺序查找，命中首个文件即停止；相对路径会基于 [WithBaseDir] 解析。
func WithConfigPaths(paths ...string) Option {
	return func(o *options) {
		o.configPaths = paths
	}
}

// WithBaseDir 设置相对配置路径的解析基准，绝对路径不受影响。
func WithBaseDir(path string) Option {
	return func(o *options) {
		o.baseDir = path
	}
}

// WithEnvPrefix 启用环境变量前缀解析。
//
// 环境变量命名规则：
//   - 前缀 + 大写的配置 key
//   - 点号 (.) 和连字符 (-) 转为下划线 (_)
//
// 示例 (前缀为 "XCMACRO_")：
//   - XCMACRO_LOG_LEVEL → log.level
//   - XCMACRO_SERVER_ADDR → server.addr
//   - XCMACRO_EXPAND_MAX_DEPTH → expand.max-depth
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// WithoutTemplateExpansion 禁用默认值与配置文件中的宏展开。
//
// 默认会以当前环境变量为设置表展开 $(VAR) / ${VAR} / $VAR 引用。
func WithoutTemplateExpansion() Option {
	return func(o *options) {
		o.noTemplateExpansion = true
	}
}

// WithRawKeys 指定不做宏展开的 key 路径 (点号分隔，如 "expand.set")，其子树同样保持原样。
//
// 适用于值本身就是模板、需要交给后续流程展开的配置项。
func WithRawKeys(paths ...string) Option {
	return func(o *options) {
		if o.rawKeys == nil {
			o.rawKeys = make(map[string]struct{}, len(paths))
		}
		for _, path := range paths {
			o.rawKeys[path] = struct{}{}
		}
	}
}
