package xcmacro

import "strings"

// outcomeKind 一次名称扫描的结果类型。
type outcomeKind uint8

const (
	outcomeResolved outcomeKind = iota // 得到名称，交给 resolve
	outcomeAbsent                      // 名称非法，按缺失处理
	outcomeLiteral                     // 不是引用，原文输出
	outcomeFatal                       // 括号未闭合
)

// scanOutcome 只在一次驱动循环内产生并消费。
//
// n 从引用开头的 "$" 算起。
type scanOutcome struct {
	name string
	n    int
	kind outcomeKind
}

// scan 从 input[at] 的 "$" 开始扫描一个 style 风格的名称。
func (x *expansion) scan(style Style, input string, at, depth int, literal bool) scanOutcome {
	if style == Simple {
		return scanSimple(input, at)
	}

	return x.scanBracketed(style, input, at, depth, literal)
}

// scanBracketed 扫描 $(...) / ${...} / $[...]。
//
// 名称中的嵌套引用通过 reference 递归展开后拼入名称；
// 同风格的裸起始字符会压栈，使成对的内部括号成为名称的一部分。
func (x *expansion) scanBracketed(style Style, input string, at, depth int, literal bool) scanOutcome {
	if depth >= x.maxDepth {
		return scanOutcome{kind: outcomeFatal}
	}

	closer, _ := style.Closer()
	opener := style.Opener()[1]
	stack := []byte{closer}

	var (
		name    strings.Builder
		pos     = Beginning
		last    byte
		lastRaw bool
	)
	for i := at + len(style.Opener()); i < len(input); {
		c := input[i]

		if c == '$' && i+1 < len(input) && (input[i+1] == '$' || isOpener(input[i+1])) {
			text, n, fatal := x.reference(input, i, depth+1, literal)
			if fatal || x.exhausted {
				return scanOutcome{kind: outcomeFatal}
			}
			name.WriteString(text)
			i += n
			pos, lastRaw = Middle, false

			continue
		}

		if c == stack[len(stack)-1] {
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				n := i + 1 - at
				if lastRaw && Classify(style, last, End) == Disallowed {
					return scanOutcome{kind: outcomeAbsent, n: n}
				}

				return scanOutcome{kind: outcomeResolved, name: name.String(), n: n}
			}
		} else if c == opener {
			stack = append(stack, closer)
		} else {
			switch Classify(style, c, pos) {
			case LiteralBreak:
				return scanOutcome{kind: outcomeLiteral, n: i - at}
			case Disallowed:
				if pos == Beginning {
					return scanOutcome{kind: outcomeLiteral, n: i - at}
				}

				return scanOutcome{kind: outcomeAbsent, n: i + 1 - at}
			case Allowed:
			}
		}

		name.WriteByte(c)
		last, lastRaw = c, true
		pos = Middle
		i++
	}

	return scanOutcome{kind: outcomeFatal}
}

// scanSimple 扫描 $NAME。
//
// 名称在第一个非 Allowed 字符或新的 "$" 处结束，该字符不被消费；
// 结尾位置非法的字符 (如句点) 会退还为普通文本。
func scanSimple(input string, at int) scanOutcome {
	start := at + 1
	i := start
	for pos := Beginning; i < len(input); pos = Middle {
		c := input[i]
		if c == '$' || Classify(Simple, c, pos) != Allowed {
			break
		}
		i++
	}

	end := i
	for end > start && Classify(Simple, input[end-1], End) != Allowed {
		end--
	}

	if end == start {
		if start < len(input) && Classify(Simple, input[start], Beginning) == Disallowed {
			return scanOutcome{kind: outcomeLiteral, n: 2}
		}

		return scanOutcome{kind: outcomeLiteral, n: 1}
	}

	return scanOutcome{kind: outcomeResolved, name: input[start:end], n: end - at}
}
