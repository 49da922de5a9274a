package types

import "sort"

// DeclarationKind 声明节点类型（与 solc AST 的 nodeType 保持一致）
type DeclarationKind string

const (
	// DeclarationStruct 结构体定义
	DeclarationStruct DeclarationKind = "StructDefinition"
	// DeclarationEnum 枚举定义
	DeclarationEnum DeclarationKind = "EnumDefinition"
)

// DeclarationMember 声明的子节点
//
// 结构体成员同时携带成员名和成员类型字符串；
// 枚举值只有 Name，TypeString 为空（布局计算只关心数量）。
type DeclarationMember struct {
	Name       string `json:"name"`
	TypeString string `json:"typeString,omitempty"`
}

// Declaration 用户声明的复合类型（结构体、枚举等）
type Declaration struct {
	ID            int64               `json:"id"`
	Kind          DeclarationKind     `json:"kind"`
	Name          string              `json:"name"`
	CanonicalName string              `json:"canonicalName,omitempty"` // 如 "Vault.Position"
	Members       []DeclarationMember `json:"members"`
}

// Matches 判断声明名或规范名是否等于 name
func (d *Declaration) Matches(name string) bool {
	if d == nil || name == "" {
		return false
	}
	return d.Name == name || (d.CanonicalName != "" && d.CanonicalName == name)
}

// SymbolTable 声明表：key 为不透明标识（通常是 solc AST 节点 ID）
// 查找时按声明名线性扫描，布局解析期间只读
type SymbolTable map[int64]*Declaration

// SortedKeys 返回升序排列的 key，保证重名声明时查找结果确定
func (t SymbolTable) SortedKeys() []int64 {
	keys := make([]int64, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Add 以声明自身 ID 作为 key 加入声明表
func (t SymbolTable) Add(decl *Declaration) {
	if decl == nil {
		return
	}
	t[decl.ID] = decl
}
