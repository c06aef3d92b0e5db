// Package client 提供 HTTP 展开服务的客户端命令。
package client

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-xcmacro/internal/command"
)

// Command 客户端命令
var Command = NewCommand()

// NewCommand 创建 client 命令，每次返回独立的 flags 实例。
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:  "client",
		Usage: "HTTP 展开服务客户端",
		Flags: append([]cli.Flag{
			command.ConfigFlag(),
			&cli.StringFlag{
				Name:    "client-url",
				Aliases: []string{"u"},
				Value:   command.Defaults.Client.URL,
				Usage:   "服务器地址",
			},
			&cli.DurationFlag{
				Name:  "client-timeout",
				Value: command.Defaults.Client.Timeout,
				Usage: "请求超时时间",
			},
		}, command.LogFlags()...),
		Commands: []*cli.Command{
			{
				Name:   "health",
				Usage:  "检查服务器健康状态",
				Action: healthAction,
			},
			{
				Name:      "expand",
				Usage:     "通过服务器展开模板",
				ArgsUsage: "[template...]",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:    "set",
						Aliases: []string{"D"},
						Usage:   "随请求发送的设置 NAME=VALUE，可重复，值可以为空",
					},
				},
				Action: expandAction,
			},
		},
	}
}
