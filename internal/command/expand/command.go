// Package expand 提供 expand 与 check 命令。
package expand

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-xcmacro/internal/command"
)

// Command 展开命令
var Command = NewCommand()

// CheckCommand 检查命令
var CheckCommand = NewCheckCommand()

// NewCommand 创建 expand 命令，每次返回独立的 flags 实例。
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:      "expand",
		Usage:     "展开模板中的构建设置引用",
		ArgsUsage: "[template...]",
		Description: "每个参数作为一个模板展开并输出一行；没有参数时逐行读取标准输入。\n" +
			"设置表按 环境变量(--expand-environ) → 设置文件(--expand-settings) → 内联设置(--expand-set) 逐层覆盖。",
		Flags:  flags(),
		Action: action,
	}
}

// NewCheckCommand 创建 check 命令，存在无法解析的引用时返回错误。
func NewCheckCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "列出模板中无法解析的引用",
		ArgsUsage: "[template...]",
		Flags:     flags(),
		Action:    checkAction,
	}
}

func flags() []cli.Flag {
	return append(append([]cli.Flag{command.ConfigFlag()}, command.ExpandFlags()...), command.LogFlags()...)
}
