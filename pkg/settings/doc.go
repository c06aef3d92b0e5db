// Package settings 为 [xcmacro] 提供设置表来源。
//
// 支持的来源：
//   - YAML/JSON 文件 - 根节点必须是对象，非字符串标量会被转换为字符串
//   - .xcconfig 文件 - NAME = value，支持 // 注释与 #include
//   - 环境变量快照 - [FromEnviron]
//   - 命令行赋值 - [ParseAssignments]
//
// 多个来源通过 [Merge] 逐层覆盖，上层值中的 $(inherited) 会替换为下层的原始值。
// 本包只读取原始值，不做展开。
package settings
