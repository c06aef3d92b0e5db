// Author: lwmacct (https://github.com/lwmacct)
package cfgm_test

import (
	"fmt"
	"os"

	"github.com/lwmacct/251207-go-pkg-xcmacro/pkg/cfgm"
)

// Example_defaultPaths 演示 DefaultPaths 的搜索顺序。
func Example_defaultPaths() {
	// 不指定应用名称时，返回基础路径
	paths := cfgm.DefaultPaths()
	fmt.Println("基础路径数量:", len(paths))

	// 指定应用名称时，会包含应用专属配置路径
	paths = cfgm.DefaultPaths("myapp")
	fmt.Println("带应用名路径数量:", len(paths))

	// Output:
	// 基础路径数量: 2
	// 带应用名路径数量: 5
}

// Example_load 演示配置文件不存在时使用默认值。
func Example_load() {
	type Config struct {
		Name  string `json:"name"`
		Debug bool   `json:"debug"`
	}

	cfg, err := cfgm.Load(Config{Name: "default-app"},
		cfgm.WithConfigPaths("nonexistent.yaml"),
	)
	if err != nil {
		fmt.Println("加载失败:", err)

		return
	}

	fmt.Println("Name:", cfg.Name)
	fmt.Println("Debug:", cfg.Debug)

	// Output:
	// Name: default-app
	// Debug: false
}

// Example_load_expansion 演示配置文件中的宏展开。
func Example_load_expansion() {
	type Config struct {
		Settings string `json:"settings"`
		Literal  string `json:"literal"`
	}

	_ = os.Setenv("CFGM_EXAMPLE_ROOT", "/src/app")
	defer func() { _ = os.Unsetenv("CFGM_EXAMPLE_ROOT") }()

	tmpFile, err := os.CreateTemp("", "cfgm-example-*.yaml")
	if err != nil {
		fmt.Println("创建临时文件失败:", err)

		return
	}
	defer func() { _ = os.Remove(tmpFile.Name()) }()
	_, _ = tmpFile.WriteString("settings: \"$(CFGM_EXAMPLE_ROOT)/Debug.xcconfig\"\nliteral: \"$$(SRCROOT)\"\n")
	_ = tmpFile.Close()

	cfg, err := cfgm.Load(Config{}, cfgm.WithConfigPaths(tmpFile.Name()))
	if err != nil {
		fmt.Println("加载失败:", err)

		return
	}

	fmt.Println(cfg.Settings)
	fmt.Println(cfg.Literal)

	// Output:
	// /src/app/Debug.xcconfig
	// $(SRCROOT)
}
