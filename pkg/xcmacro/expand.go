package xcmacro

import (
	"errors"
	"log/slog"
	"strings"
)

// ErrBudgetExceeded 展开工作量超出 [WithBudget] 设置的上限。
var ErrBudgetExceeded = errors.New("xcmacro: expansion budget exceeded")

// Reason 引用未能解析的原因。
type Reason uint8

const (
	Undefined Reason = iota // 设置表中不存在
	Cyclic                  // 正在解析中 (直接或间接引用自身)
	Invalid                 // 名称中出现非法字符
)

func (r Reason) String() string {
	switch r {
	case Undefined:
		return "undefined"
	case Cyclic:
		return "cyclic"
	case Invalid:
		return "invalid"
	}

	return "unknown"
}

// Reference 一个按缺失策略处理的引用。
type Reference struct {
	Name   string // 解析出的名称；Invalid 时为空
	Source string // 引用在输入中的原文
	Style  Style
	Reason Reason
}

// ═══════════════════════════════════════════════════════════════════════════
// Expander
// ═══════════════════════════════════════════════════════════════════════════

// Expander 绑定一份设置表的展开器。
//
// 创建后不可变，可以被多个 goroutine 共享；每次 Expand 拥有独立的循环检测状态。
type Expander struct {
	table Table
	opts  options
}

// New 创建展开器，table 在展开期间只读。
func New(table Table, opts ...Option) *Expander {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxDepth <= 0 {
		o.maxDepth = DefaultMaxDepth
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	return &Expander{table: table, opts: o}
}

// Expand 展开 input 中的全部引用。
//
// 遇到未闭合的括号引用或超出工作量上限时，只返回此前已经输出的内容。
func (e *Expander) Expand(input string) string {
	out, _ := e.TryExpand(input)

	return out
}

// TryExpand 与 [Expander.Expand] 相同，超出工作量上限时额外返回 [ErrBudgetExceeded]。
//
// 未闭合引用导致的截断不是错误。
func (e *Expander) TryExpand(input string) (string, error) {
	x := &expansion{
		options:  e.opts,
		table:    e.table,
		inFlight: make(map[string]struct{}),
	}
	out, fatal := x.expand(input)
	if x.exhausted {
		e.opts.logger.Debug("Expansion budget exceeded, output truncated", "budget", e.opts.budget, "kept", len(out))

		return out, ErrBudgetExceeded
	}
	if fatal {
		e.opts.logger.Debug("Unterminated reference, output truncated", "input", input, "kept", len(out))
	}

	return out, nil
}

// Expand 使用默认选项展开 input。
func Expand(input string, table Table) string {
	return New(table).Expand(input)
}

// ═══════════════════════════════════════════════════════════════════════════
// 驱动循环
// ═══════════════════════════════════════════════════════════════════════════

// expansion 单次顶层展开的状态。
type expansion struct {
	options
	table     Table
	inFlight  map[string]struct{}
	spent     int
	exhausted bool
}

// charge 记录 n 个单位的工作量，超出上限后返回 false 并保持耗尽状态。
func (x *expansion) charge(n int) bool {
	if x.budget <= 0 {
		return true
	}
	x.spent += n
	if x.spent > x.budget {
		x.exhausted = true
	}

	return !x.exhausted
}

// expand 从左到右复制文本并展开遇到的引用。
//
// 返回 true 表示遇到未闭合引用或工作量耗尽，结果已截断。
func (x *expansion) expand(input string) (string, bool) {
	if strings.IndexByte(input, '$') < 0 {
		if !x.charge(len(input)) {
			return "", true
		}

		return input, false
	}

	var buf strings.Builder
	buf.Grow(len(input))

	for i := 0; i < len(input); {
		j := strings.IndexByte(input[i:], '$')
		if j < 0 {
			j = len(input) - i
		}
		if !x.charge(j) {
			return buf.String(), true
		}
		buf.WriteString(input[i : i+j])
		i += j
		if i == len(input) {
			break
		}

		text, n, fatal := x.reference(input, i, 0, false)
		if fatal || x.exhausted || !x.charge(len(text)) {
			return buf.String(), true
		}
		buf.WriteString(text)
		i += n
	}

	return buf.String(), false
}

// reference 处理 input[at] 处以 "$" 开头的一个记号，返回替换文本与消费的字节数。
//
// literal 为 true 时只测量引用跨度，替换文本就是原文 (用于 "$$" 转义)。
func (x *expansion) reference(input string, at, depth int, literal bool) (string, int, bool) {
	if at+1 >= len(input) {
		return "$", 1, false
	}

	next := input[at+1]
	if next == '$' {
		return x.escape(input, at, depth, literal)
	}

	style, _ := styleForOpener(next)
	out := x.scan(style, input, at, depth, literal)
	if out.kind == outcomeFatal {
		return "", 0, true
	}

	source := input[at : at+out.n]
	if literal {
		return source, out.n, false
	}

	switch out.kind {
	case outcomeLiteral:
		return source, out.n, false
	case outcomeAbsent:
		return x.missing(Reference{Source: source, Style: style, Reason: Invalid}), out.n, false
	default:
		return x.resolve(style, out.name, source), out.n, false
	}
}

// escape 处理 "$$"：紧随其后的一个引用按原文输出。
//
// 后面不是可识别的引用时 (包括又一个 "$")，"$$" 只输出一个 "$"。
func (x *expansion) escape(input string, at, depth int, literal bool) (string, int, bool) {
	ref := at + 1
	text, n := "$", 2
	if ref+1 < len(input) && input[ref+1] != '$' {
		raw, m, fatal := x.reference(input, ref, depth, true)
		if !fatal {
			text, n = raw, 1+m
		}
	}
	if literal {
		return input[at : at+n], n, false
	}

	return text, n, false
}

// ═══════════════════════════════════════════════════════════════════════════
// 名称解析
// ═══════════════════════════════════════════════════════════════════════════

// resolve 查找 name 并递归展开其值。
func (x *expansion) resolve(style Style, name, source string) string {
	if !x.charge(1) {
		return ""
	}

	value, ok := x.table[name]
	if !ok {
		return x.missing(Reference{Name: name, Source: source, Style: style, Reason: Undefined})
	}
	if _, busy := x.inFlight[name]; busy || len(x.inFlight) >= x.maxDepth {
		x.logger.Debug("Cyclic reference", "name", name, "depth", len(x.inFlight))

		return x.missing(Reference{Name: name, Source: source, Style: style, Reason: Cyclic})
	}

	x.inFlight[name] = struct{}{}
	defer delete(x.inFlight, name)

	out, fatal := x.expand(value)
	if fatal && !x.exhausted {
		x.logger.Debug("Unterminated reference in setting value, value truncated", "name", name, "kept", len(out))
	}

	return out
}

// missing 按风格的缺失策略生成替换文本。
func (x *expansion) missing(ref Reference) string {
	if x.onMissing != nil {
		x.onMissing(ref)
	}
	if ref.Style.Policy() == EmitLiteralReference {
		return ref.Source
	}

	return ""
}
