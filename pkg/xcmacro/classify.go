package xcmacro

import "fmt"

// Position 字符在名称中的位置。
type Position uint8

const (
	Beginning Position = iota // 紧跟起始记号的第一个字符
	Middle                    // 其余字符
	End                       // 闭合前的最后一个字符 (额外检查)
)

// Class 字符分类结果。
type Class uint8

const (
	Allowed      Class = iota // 可以出现在名称中
	Disallowed                // 当前位置非法
	LiteralBreak              // 放弃当前引用，按原文输出
)

func (c Class) String() string {
	switch c {
	case Allowed:
		return "allowed"
	case Disallowed:
		return "disallowed"
	case LiteralBreak:
		return "literal-break"
	}

	return "unknown"
}

// classTable 以 [Position][字符] 为索引。
type classTable [3][256]Class

var (
	bracketedTable = buildBracketedTable()
	simpleTable    = buildSimpleTable()
)

// buildBracketedTable 三种括号风格共用的字符表。
//
// 闭合字符与同风格的起始字符由扫描器先行拦截，不经过此表。
func buildBracketedTable() *classTable {
	var t classTable

	t.set(':', Disallowed, Beginning, End)
	t.set(',', Disallowed, Beginning)
	t.set('=', Disallowed, Beginning, Middle, End)
	t.set('\\', Disallowed, End)
	t.set('$', LiteralBreak, Beginning, Middle, End)

	return &t
}

// buildSimpleTable $NAME 形式的字符表，除字母与下划线外几乎都会中断名称。
func buildSimpleTable() *classTable {
	var t classTable
	for c := range 256 {
		t.set(byte(c), LiteralBreak, Beginning, Middle, End)
	}
	for c := 'a'; c <= 'z'; c++ {
		t.set(byte(c), Allowed, Beginning, Middle, End)
		t.set(byte(c-'a'+'A'), Allowed, Beginning, Middle, End)
	}
	t.set('_', Allowed, Beginning, Middle, End)

	for c := '0'; c <= '9'; c++ {
		t.set(byte(c), Disallowed, Beginning)
		t.set(byte(c), Allowed, Middle, End)
	}

	// 结尾的 "." 不属于名称，例如 "$NAME." 中的句点
	t.set('.', Disallowed, Beginning, End)
	t.set('.', Allowed, Middle)

	return &t
}

func (t *classTable) set(c byte, class Class, positions ...Position) {
	for _, pos := range positions {
		t[pos][c] = class
	}
}

// Classify 返回字符 c 在给定风格与位置下的分类。
//
// 对括号风格而言，自身的闭合字符永远不会被分类，扫描器会先将其识别为闭合。
func Classify(style Style, c byte, pos Position) Class {
	if pos > End {
		panic(fmt.Sprintf("xcmacro: unknown position %d", pos))
	}
	switch style {
	case Simple:
		return simpleTable[pos][c]
	case Parenthesis, CurlyBracket, SquareBracket:
		return bracketedTable[pos][c]
	}
	panic("xcmacro: unknown style " + style.String())
}
