package settings_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251207-go-pkg-xcmacro/pkg/settings"
	"github.com/lwmacct/251207-go-pkg-xcmacro/pkg/xcmacro"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadFile_YAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "settings.yaml", `
PRODUCT_NAME: Demo
CURRENT_PROJECT_VERSION: 42
MARKETING_VERSION: 1.5
ENABLE_BITCODE: false
SWIFT_EMIT_LOC_STRINGS: true
EMPTY:
BUNDLE_ID: com.example.$(PRODUCT_NAME)
`)

	table, err := settings.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, xcmacro.Table{
		"PRODUCT_NAME":            "Demo",
		"CURRENT_PROJECT_VERSION": "42",
		"MARKETING_VERSION":       "1.5",
		"ENABLE_BITCODE":          "NO",
		"SWIFT_EMIT_LOC_STRINGS":  "YES",
		"EMPTY":                   "",
		"BUNDLE_ID":               "com.example.$(PRODUCT_NAME)",
	}, table)
}

func TestLoadFile_JSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "settings.json", `{"SDKROOT": "iphoneos", "TARGETED_DEVICE_FAMILY": 1}`)

	table, err := settings.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, xcmacro.Table{"SDKROOT": "iphoneos", "TARGETED_DEVICE_FAMILY": "1"}, table)
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		errMsg  string
	}{
		{"root must be object", "list.yaml", "- a\n- b\n", "root must be object"},
		{"nested values rejected", "nested.json", `{"A": {"B": "c"}}`, `"A" must be a scalar`},
		{"invalid json", "bad.json", `{`, "parse settings"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := settings.LoadFile(writeFile(t, dir, tt.file, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	_, err := settings.LoadFile(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFile_XCConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.xcconfig", `
// shared settings
PRODUCT_NAME = Demo
OTHER_LDFLAGS = -ObjC
`)
	path := writeFile(t, dir, "debug.xcconfig", `
#include "base.xcconfig"
#include? "local.xcconfig"

OTHER_LDFLAGS = $(inherited) -lz ;
GCC_PREPROCESSOR_DEFINITIONS = DEBUG=1 // trailing comment
ARCHS[sdk=iphonesimulator*] = x86_64
SWIFT_ACTIVE_COMPILATION_CONDITIONS=DEBUG
`)

	table, err := settings.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, xcmacro.Table{
		"PRODUCT_NAME":                        "Demo",
		"OTHER_LDFLAGS":                       "-ObjC -lz",
		"GCC_PREPROCESSOR_DEFINITIONS":        "DEBUG=1",
		"SWIFT_ACTIVE_COMPILATION_CONDITIONS": "DEBUG",
	}, table)
}

func TestLoadFile_XCConfigErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := settings.LoadFile(writeFile(t, dir, "missing-include.xcconfig", `#include "nope.xcconfig"`))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = settings.LoadFile(writeFile(t, dir, "malformed.xcconfig", `#include nope.xcconfig`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed include")

	_, err = settings.LoadFile(writeFile(t, dir, "no-equals.xcconfig", "A = 1\nJUST_A_NAME\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-equals.xcconfig:2")

	_, err = settings.LoadFile(writeFile(t, dir, "loop.xcconfig", `#include "loop.xcconfig"`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "include depth")
}

func TestLoadFile_XCConfigCommentInValue(t *testing.T) {
	path := writeFile(t, t.TempDir(), "urls.xcconfig", "URL = https://example.com\nESCAPED = https:/$()/example.com\n")

	table, err := settings.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https:", table["URL"])
	assert.Equal(t, "https://example.com", xcmacro.Expand(table["ESCAPED"], table))
}

func TestLoad_MergesInOrder(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "a.yaml", "A: one\nFLAGS: -a\n")
	second := writeFile(t, dir, "b.xcconfig", "A = two\nFLAGS = $(inherited) -b\n")

	table, err := settings.Load(first, second)
	require.NoError(t, err)
	assert.Equal(t, xcmacro.Table{"A": "two", "FLAGS": "-a -b"}, table)

	_, err = settings.Load(first, filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}

func TestMerge(t *testing.T) {
	merged := settings.Merge(
		xcmacro.Table{"A": "base", "B": "b"},
		nil,
		xcmacro.Table{"A": "${inherited} top", "C": "$[inherited]c"},
	)

	assert.Equal(t, xcmacro.Table{"A": "base top", "B": "b", "C": "$[inherited]c"}, merged)
	assert.Equal(t, "c", xcmacro.Expand("$(C)", merged))
	assert.Empty(t, settings.Merge())
}

func TestFromEnviron(t *testing.T) {
	table := settings.FromEnviron([]string{"HOME=/root", "EMPTY=", "EQ=a=b", "=C:=C:\\", "BROKEN"})
	assert.Equal(t, xcmacro.Table{"HOME": "/root", "EMPTY": "", "EQ": "a=b"}, table)
}

func TestParseAssignments(t *testing.T) {
	table, err := settings.ParseAssignments([]string{"A=1", " B =two words", "C="})
	require.NoError(t, err)
	assert.Equal(t, xcmacro.Table{"A": "1", "B": "two words", "C": ""}, table)

	_, err = settings.ParseAssignments([]string{"NOVALUE"})
	require.Error(t, err)

	_, err = settings.ParseAssignments([]string{"=x"})
	require.Error(t, err)
}
