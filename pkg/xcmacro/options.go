package xcmacro

import "log/slog"

// DefaultMaxDepth 默认的嵌套与递归深度上限。
const DefaultMaxDepth = 64

// options 展开选项。
type options struct {
	logger    *slog.Logger
	onMissing func(Reference)
	maxDepth  int
	budget    int
}

// Option 展开选项函数。
type Option func(*options)

// WithMaxDepth 设置深度上限。
//
// 名称内嵌套引用超过上限视为括号未闭合 (截断输出)；
// 值的递归展开超过上限视为循环引用 (按缺失处理)。
// n <= 0 时使用 [DefaultMaxDepth]。
func WithMaxDepth(n int) Option {
	return func(o *options) {
		o.maxDepth = n
	}
}

// WithBudget 限制单次展开的工作量：写出的字节数 (含递归展开的中间值) 加上解析的引用数。
//
// 超出后展开立即停止，[Expander.Expand] 返回已写出的部分，
// [Expander.TryExpand] 返回 [ErrBudgetExceeded]。n <= 0 表示不限制。
func WithBudget(n int) Option {
	return func(o *options) {
		o.budget = n
	}
}

// WithMissingHook 注册未解析引用的观察函数。
//
// 每个按缺失策略处理的引用都会回调一次，转义的引用不会回调。
func WithMissingHook(fn func(Reference)) Option {
	return func(o *options) {
		o.onMissing = fn
	}
}

// WithLogger 设置调试日志输出，默认使用 slog.Default()。
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
