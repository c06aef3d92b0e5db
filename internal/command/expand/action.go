package expand

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-xcmacro/internal/command"
	"github.com/lwmacct/251207-go-pkg-xcmacro/pkg/xcmacro"
)

// maxSuggestions 每个未解析引用最多给出的候选名称数。
const maxSuggestions = 3

func action(_ context.Context, cmd *cli.Command) error {
	cfg, err := command.Load(cmd)
	if err != nil {
		return err
	}
	table, err := cfg.Expand.Table()
	if err != nil {
		return err
	}
	inputs, err := command.Inputs(cmd)
	if err != nil {
		return fmt.Errorf("read templates: %w", err)
	}
	slog.Debug("Expanding templates", "count", len(inputs), "settings", len(table))

	expander := xcmacro.New(table, cfg.Expand.Options()...)
	w := command.Writer(cmd)
	for i, input := range inputs {
		out, err := expander.TryExpand(input)
		if err != nil {
			return fmt.Errorf("template %d: %w", i+1, err)
		}
		if _, err := fmt.Fprintln(w, out); err != nil {
			return err
		}
	}

	return nil
}

func checkAction(_ context.Context, cmd *cli.Command) error {
	cfg, err := command.Load(cmd)
	if err != nil {
		return err
	}
	table, err := cfg.Expand.Table()
	if err != nil {
		return err
	}
	inputs, err := command.Inputs(cmd)
	if err != nil {
		return fmt.Errorf("read templates: %w", err)
	}

	var refs []xcmacro.Reference
	expander := xcmacro.New(table, append(cfg.Expand.Options(),
		xcmacro.WithMissingHook(func(ref xcmacro.Reference) { refs = append(refs, ref) }),
	)...)

	names := slices.Sorted(maps.Keys(table))
	w := command.Writer(cmd)
	total := 0
	for _, input := range inputs {
		refs = refs[:0]
		if _, err := expander.TryExpand(input); err != nil {
			return fmt.Errorf("%q: %w", input, err)
		}
		for _, ref := range refs {
			line := fmt.Sprintf("%q: %s is %s", input, ref.Source, ref.Reason)
			if candidates := suggest(ref.Name, names); len(candidates) > 0 {
				line += fmt.Sprintf(" (did you mean %s?)", strings.Join(candidates, ", "))
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		total += len(refs)
	}

	if total > 0 {
		return fmt.Errorf("%d unresolved reference(s)", total)
	}

	return nil
}

// suggest 使用模糊匹配为未定义的名称给出候选。
func suggest(name string, names []string) []string {
	if name == "" {
		return nil
	}

	var out []string
	for _, match := range fuzzy.Find(name, names) {
		if match.Str == name {
			continue
		}
		out = append(out, match.Str)
		if len(out) == maxSuggestions {
			break
		}
	}

	return out
}
