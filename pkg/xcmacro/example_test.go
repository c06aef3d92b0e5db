package xcmacro_test

import (
	"fmt"

	"github.com/lwmacct/251207-go-pkg-xcmacro/pkg/xcmacro"
)

// Example_expand 演示基本展开与缺失策略。
func Example_expand() {
	table := xcmacro.Table{
		"PRODUCT_NAME": "Demo",
		"CONFIG":       "Debug",
	}

	fmt.Println(xcmacro.Expand("$(PRODUCT_NAME)_$(CONFIG)", table))
	fmt.Println(xcmacro.Expand("[$(MISSING)] [$MISSING]", table))

	// Output:
	// Demo_Debug
	// [] [$MISSING]
}

// Example_nestedName 演示名称中嵌套引用。
func Example_nestedName() {
	table := xcmacro.Table{
		"SDK":               "iphoneos",
		"ARCHS_iphoneos":    "arm64",
		"ARCHS_iphonesim":   "x86_64",
		"ARCHS_FOR_CURRENT": "$(ARCHS_$(SDK))",
	}

	fmt.Println(xcmacro.Expand("${ARCHS_FOR_CURRENT}", table))

	// Output:
	// arm64
}

// Example_missingHook 演示如何收集未解析的引用。
func Example_missingHook() {
	e := xcmacro.New(xcmacro.Table{"A": "$(A)"}, xcmacro.WithMissingHook(func(ref xcmacro.Reference) {
		fmt.Printf("%s %s %s\n", ref.Reason, ref.Style, ref.Source)
	}))

	fmt.Printf("%q\n", e.Expand("$(A)$(B)"))

	// Output:
	// cyclic parenthesis $(A)
	// undefined parenthesis $(B)
	// ""
}
