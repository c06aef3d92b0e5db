package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lwmacct/251207-go-pkg-xcmacro/pkg/xcmacro"
)

// inheritedTokens 上层值中指向下层值的引用。
var inheritedTokens = []string{"$(inherited)", "${inherited}", "$[inherited]"}

// Load 按顺序读取设置文件并合并，后面的文件覆盖前面的。
func Load(paths ...string) (xcmacro.Table, error) {
	layers := make([]xcmacro.Table, 0, len(paths))
	for _, path := range paths {
		table, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		layers = append(layers, table)
	}

	return Merge(layers...), nil
}

// LoadFile 按扩展名读取单个设置文件。
func LoadFile(path string) (xcmacro.Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".xcconfig") {
		return loadXCConfig(path, 0)
	}

	content, err := os.ReadFile(path) //nolint:gosec // path is supplied by the caller
	if err != nil {
		return nil, fmt.Errorf("read settings %s: %w", path, err)
	}

	table, err := parseDocument(path, content)
	if err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}

	return table, nil
}

// Merge 逐层合并设置表，后面的层覆盖前面的层。
//
// 上层值中的 $(inherited) / ${inherited} / $[inherited] 会替换为下层的原始值；
// 下层不存在该名称时保留原文，以便继续与更低的层合并，
// 最终展开时 inherited 未定义，括号引用展开为空。
func Merge(layers ...xcmacro.Table) xcmacro.Table {
	out := make(xcmacro.Table)
	for _, layer := range layers {
		for name, value := range layer {
			if lower, ok := out[name]; ok && containsInherited(value) {
				value = replaceInherited(value, lower)
			}
			out[name] = value
		}
	}

	return out
}

func containsInherited(value string) bool {
	for _, token := range inheritedTokens {
		if strings.Contains(value, token) {
			return true
		}
	}

	return false
}

func replaceInherited(value, lower string) string {
	pairs := make([]string, 0, 2*len(inheritedTokens))
	for _, token := range inheritedTokens {
		pairs = append(pairs, token, lower)
	}

	return strings.NewReplacer(pairs...).Replace(value)
}

// FromEnviron 生成环境变量快照，environ 的格式与 os.Environ() 相同。
func FromEnviron(environ []string) xcmacro.Table {
	table := make(xcmacro.Table, len(environ))
	for _, env := range environ {
		name, value, ok := strings.Cut(env, "=")
		if ok && name != "" {
			table[name] = value
		}
	}

	return table
}

// ParseAssignments 解析命令行中的 NAME=VALUE 赋值。
//
// 值可以为空；名称两侧的空白会被去掉，名称不能为空。
func ParseAssignments(assignments []string) (xcmacro.Table, error) {
	table := make(xcmacro.Table, len(assignments))
	for _, assignment := range assignments {
		name, value, ok := strings.Cut(assignment, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid assignment %q: want NAME=VALUE", assignment)
		}
		table[name] = value
	}

	return table, nil
}
