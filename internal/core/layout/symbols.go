package layout

import "github.com/weisyn/slotlayout/pkg/types"

// findDeclaration 按键升序线性扫描，同名时最小键优先
func findDeclaration(table types.SymbolTable, kind types.DeclarationKind, name string) *types.Declaration {
	for _, key := range table.SortedKeys() {
		decl := table[key]
		if decl != nil && decl.Kind == kind && decl.Matches(name) {
			return decl
		}
	}
	return nil
}

// findStruct 查找结构体声明
func findStruct(table types.SymbolTable, name string) *types.Declaration {
	return findDeclaration(table, types.DeclarationStruct, name)
}

// findEnum 查找枚举声明
func findEnum(table types.SymbolTable, name string) *types.Declaration {
	return findDeclaration(table, types.DeclarationEnum, name)
}
