package xcmacro

import "fmt"

// Table 设置表：名称区分大小写，可以为空字符串；值可以继续包含引用。
type Table map[string]string

// Style 引用的定界符风格。
type Style uint8

const (
	Simple        Style = iota // $NAME
	Parenthesis                // $(NAME)
	CurlyBracket               // ${NAME}
	SquareBracket              // $[NAME]
)

// MissingValuePolicy 名称无法解析时的替换规则。
type MissingValuePolicy uint8

const (
	EmitEmpty            MissingValuePolicy = iota // 替换为空字符串
	EmitLiteralReference                           // 保留引用原文
)

// Opener 返回引用的起始记号。
func (s Style) Opener() string {
	switch s {
	case Simple:
		return "$"
	case Parenthesis:
		return "$("
	case CurlyBracket:
		return "${"
	case SquareBracket:
		return "$["
	}
	panic(fmt.Sprintf("xcmacro: unknown style %d", s))
}

// Closer 返回闭合字符；Simple 没有闭合字符。
func (s Style) Closer() (byte, bool) {
	switch s {
	case Simple:
		return 0, false
	case Parenthesis:
		return ')', true
	case CurlyBracket:
		return '}', true
	case SquareBracket:
		return ']', true
	}
	panic(fmt.Sprintf("xcmacro: unknown style %d", s))
}

// Policy 返回该风格的缺失策略。
func (s Style) Policy() MissingValuePolicy {
	if s == Simple {
		return EmitLiteralReference
	}

	return EmitEmpty
}

func (s Style) String() string {
	switch s {
	case Simple:
		return "simple"
	case Parenthesis:
		return "parenthesis"
	case CurlyBracket:
		return "curly"
	case SquareBracket:
		return "square"
	}

	return fmt.Sprintf("Style(%d)", s)
}

// styleForOpener 根据 "$" 之后的字符判断括号风格。
func styleForOpener(c byte) (Style, bool) {
	switch c {
	case '(':
		return Parenthesis, true
	case '{':
		return CurlyBracket, true
	case '[':
		return SquareBracket, true
	}

	return Simple, false
}

func isOpener(c byte) bool {
	_, ok := styleForOpener(c)
	return ok
}
