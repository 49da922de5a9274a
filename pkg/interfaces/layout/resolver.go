// Package layout 定义存储布局解析接口
package layout

import "github.com/weisyn/slotlayout/pkg/types"

// Resolver 存储布局解析器
//
// Resolve 对同一输入总是返回结构相等、彼此独立的描述树；
// 失败时返回 nil 描述和结构化错误，绝不返回部分构建的结果。
// 实现必须可并发调用。
type Resolver interface {
	Resolve(typeString string, table types.SymbolTable) (types.TypeDescriptor, error)
}
