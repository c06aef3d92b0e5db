package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-xcmacro/internal/command"
	"github.com/lwmacct/251207-go-pkg-xcmacro/internal/command/client"
	"github.com/lwmacct/251207-go-pkg-xcmacro/internal/command/expand"
	"github.com/lwmacct/251207-go-pkg-xcmacro/internal/command/server"
)

func main() {
	app := &cli.Command{
		Name:    command.AppName,
		Usage:   "Xcode 构建设置宏展开工具",
		Version: command.Version,
		Commands: []*cli.Command{
			expand.Command,
			expand.CheckCommand,
			client.Command,
			server.Command,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
