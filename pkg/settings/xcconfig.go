package settings

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lwmacct/251207-go-pkg-xcmacro/pkg/xcmacro"
)

// maxIncludeDepth #include 的最大嵌套层数。
const maxIncludeDepth = 16

// loadXCConfig 读取 .xcconfig 文件。
//
// 语法：
//   - NAME = value，可选的结尾 ";"
//   - "//" 之后为注释，包括值中的 "//"
//   - NAME[sdk=...] = value 条件赋值会被跳过
//   - #include "other.xcconfig" 引入文件，路径相对于当前文件
//   - #include? "other.xcconfig" 文件不存在时忽略
//
// 文件中的赋值按出现顺序覆盖，$(inherited) 指向此前的值。
func loadXCConfig(path string, depth int) (xcmacro.Table, error) {
	if depth > maxIncludeDepth {
		return nil, fmt.Errorf("xcconfig %s: include depth exceeds %d", path, maxIncludeDepth)
	}

	file, err := os.Open(path) //nolint:gosec // path is supplied by the caller or an include directive
	if err != nil {
		return nil, fmt.Errorf("read settings %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	table := make(xcmacro.Table)
	scanner := bufio.NewScanner(file)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		// 与 Xcode 一致，行内任何位置的 "//" 都开始注释，值中的 URL 需写成 https:/$()/host
		line, _, _ := strings.Cut(scanner.Text(), "//")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "#include") {
			included, err := includeXCConfig(path, line, depth)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
			}
			table = Merge(table, included)

			continue
		}

		name, value, ok := strings.Cut(line, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("%s:%d: expected NAME = value", path, lineNo)
		}
		if strings.Contains(name, "[") {
			slog.Debug("Skipped conditional setting", "path", path, "line", lineNo, "name", name)

			continue
		}

		value = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), ";"))
		// 本文件中没有下层值时保留 $(inherited)，交给 Merge 与其他文件合并
		if lower, ok := table[name]; ok && containsInherited(value) {
			value = replaceInherited(value, lower)
		}
		table[name] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read settings %s: %w", path, err)
	}

	return table, nil
}

// includeXCConfig 处理一行 #include / #include? 指令。
func includeXCConfig(path, line string, depth int) (xcmacro.Table, error) {
	directive := strings.TrimPrefix(line, "#include")
	optional := strings.HasPrefix(directive, "?")
	directive = strings.TrimSpace(strings.TrimPrefix(directive, "?"))

	if len(directive) < 2 || directive[0] != '"' || directive[len(directive)-1] != '"' {
		return nil, fmt.Errorf("malformed include %q", line)
	}

	target := directive[1 : len(directive)-1]
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}

	table, err := loadXCConfig(target, depth+1)
	if err != nil && optional && errors.Is(err, fs.ErrNotExist) {
		slog.Debug("Optional include not found", "path", target)

		return xcmacro.Table{}, nil
	}

	return table, err
}
