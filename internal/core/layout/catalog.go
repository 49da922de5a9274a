package layout

import (
	"github.com/weisyn/slotlayout/internal/core/layout/solcast"
	"github.com/weisyn/slotlayout/pkg/types"
)

// Catalog 服务启动时加载的只读声明表
type Catalog struct {
	source string
	table  types.SymbolTable
}

// NewCatalog 从文件加载声明表；path 为空时返回空表
func NewCatalog(path string) (*Catalog, error) {
	if path == "" {
		return &Catalog{table: types.SymbolTable{}}, nil
	}
	table, err := solcast.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return &Catalog{source: path, table: table}, nil
}

// NewCatalogFromTable 直接包装已有声明表
func NewCatalogFromTable(table types.SymbolTable) *Catalog {
	if table == nil {
		table = types.SymbolTable{}
	}
	return &Catalog{table: table}
}

// Table 声明表（调用方不得修改）
func (c *Catalog) Table() types.SymbolTable {
	return c.table
}

// Source 加载来源路径
func (c *Catalog) Source() string {
	return c.source
}

// Entries 声明摘要
func (c *Catalog) Entries() []solcast.Entry {
	return solcast.Summarize(c.table)
}
