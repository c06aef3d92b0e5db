// Package xcmacro 展开 Xcode 构建设置中的宏引用。
//
// 输入为模板字符串与一份只读的设置表 (name → 原始值)，输出为展开后的字符串。
// 原始值本身可以继续包含引用，展开是递归的；名称内部也可以嵌套引用，
// 例如 $(FOO_$(BAR))。
//
// # 引用语法
//
//   - $NAME   - 简单引用，无闭合符，缺失时保留原文
//   - $(NAME) - 圆括号引用，缺失时展开为空
//   - ${NAME} - 花括号引用，缺失时展开为空
//   - $[NAME] - 方括号引用，缺失时展开为空
//   - $$      - 转义，紧随其后的一个引用按原文输出 (少一个 "$")
//
// # 失败语义
//
// 展开从不返回 error：
//
//  1. 名称未定义或出现循环引用 - 按风格的缺失策略处理
//  2. 名称中出现非法字符 - 起始位置按原文输出，其余位置按缺失处理
//  3. 字面中断字符 - 放弃当前引用，原文输出后继续扫描
//  4. 括号未闭合 - 立即停止，只返回此前已经输出的内容
//
// # 快速开始
//
//	table := xcmacro.Table{"PRODUCT_NAME": "Demo"}
//	out := xcmacro.Expand("$(PRODUCT_NAME)_Debug", table) // Demo_Debug
//
// 需要观察未解析引用时使用 [New] 与 [WithMissingHook]。
// 展开不受信任的设置表时使用 [WithBudget] 与 [Expander.TryExpand] 限制工作量。
package xcmacro
