package client

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-xcmacro/internal/command"
	"github.com/lwmacct/251207-go-pkg-xcmacro/pkg/settings"
)

func newClient(cmd *cli.Command) (*Client, error) {
	cfg, err := command.Load(cmd)
	if err != nil {
		return nil, err
	}

	return New(cfg.Client.URL, cfg.Client.Timeout), nil
}

func healthAction(ctx context.Context, cmd *cli.Command) error {
	c, err := newClient(cmd)
	if err != nil {
		return err
	}
	if err := c.Health(ctx); err != nil {
		return err
	}

	_, err = fmt.Fprintln(command.Writer(cmd), "ok")

	return err
}

func expandAction(ctx context.Context, cmd *cli.Command) error {
	c, err := newClient(cmd)
	if err != nil {
		return err
	}
	set, err := settings.ParseAssignments(cmd.StringSlice("set"))
	if err != nil {
		return err
	}
	inputs, err := command.Inputs(cmd)
	if err != nil {
		return fmt.Errorf("read templates: %w", err)
	}

	resp, err := c.Expand(ctx, inputs, set)
	if err != nil {
		return err
	}
	for _, ref := range resp.Unresolved {
		slog.Warn("Unresolved reference", "input", ref.Input, "source", ref.Source, "reason", ref.Reason)
	}

	w := command.Writer(cmd)
	for _, out := range resp.Outputs {
		if _, err := fmt.Fprintln(w, out); err != nil {
			return err
		}
	}

	return nil
}
