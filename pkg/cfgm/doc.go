// Package cfgm 提供通用的配置加载功能。
//
// 支持 YAML/JSON，按默认值、配置文件、环境变量与 CLI flags 逐层覆盖。
// 配置 key 使用 json tag 统一描述，YAML 与 JSON 共享同一套 key。
//
// # 加载优先级 (从低到高)
//
//  1. 默认值 - 通过 defaultConfig 参数传入
//  2. 配置文件 - 通过 [WithConfigPaths] 或 [WithAppName] 设置，命中首个文件即停止
//  3. 环境变量(前缀) - 通过 [WithEnvPrefix] 自动生成绑定
//  4. CLI flags - 通过 [WithCommand] 选项设置，最高优先级
//
// # 快速开始
//
//	cfg, err := cfgm.LoadCmd(cmd, DefaultConfig(), "xcmacro",
//	    cfgm.WithEnvPrefix("XCMACRO_"),
//	)
//
// # 宏展开
//
// 默认值与配置文件中的字符串会以当前环境变量为设置表，
// 按 Xcode 构建设置的宏语法展开（见 [xcmacro]）：
//
//	# config.yaml
//	expand:
//	  settings:
//	    - "$(HOME)/Config/Base.xcconfig"
//	    - "${SRCROOT}/Debug.xcconfig"
//
// 未定义的 $(VAR) 展开为空，未定义的 $VAR 保持原样，"$$" 用于输出字面引用。
// 使用 [WithoutTemplateExpansion] 可禁用该行为，[WithRawKeys] 可让指定 key 保持原样。
//
// # CLI Flag 映射
//
// 仅替换 "." 为 "-"：
//   - server.addr → --server-addr
//   - expand.max-depth → --expand-max-depth
package cfgm
