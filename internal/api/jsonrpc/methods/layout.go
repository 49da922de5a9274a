package methods

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/weisyn/slotlayout/internal/core/layout"
	"github.com/weisyn/slotlayout/internal/core/layout/solcast"
	layoutiface "github.com/weisyn/slotlayout/pkg/interfaces/layout"
	"go.uber.org/zap"
)

// LayoutMethods 存储布局查询
type LayoutMethods struct {
	logger   *zap.Logger
	resolver layoutiface.Resolver
	catalog  *layout.Catalog
	cache    *ResponseCache
}

// NewLayoutMethods 创建布局查询方法；cache 可为 nil
func NewLayoutMethods(logger *zap.Logger, resolver layoutiface.Resolver, catalog *layout.Catalog, cache *ResponseCache) *LayoutMethods {
	if logger == nil {
		logger = zap.NewNop()
	}
	if catalog == nil {
		catalog = layout.NewCatalogFromTable(nil)
	}
	return &LayoutMethods{
		logger:   logger,
		resolver: resolver,
		catalog:  catalog,
		cache:    cache,
	}
}

// Handlers 方法名到处理函数的映射
func (m *LayoutMethods) Handlers() map[string]Handler {
	return map[string]Handler{
		"layout_resolveType":      m.ResolveType,
		"layout_listDeclarations": m.ListDeclarations,
	}
}

// ResolveResult layout_resolveType 返回值
type ResolveResult struct {
	TypeString string                 `json:"typeString"`
	Descriptor *layout.DescriptorJSON `json:"descriptor"`
	Rows       []layout.Row           `json:"rows"`
}

// ResolveType 解析类型字符串的存储布局
// Method: layout_resolveType
// 参数：[类型字符串]
func (m *LayoutMethods) ResolveType(ctx context.Context, params json.RawMessage) (interface{}, error) {
	args, err := positional(params, 1, 1)
	if err != nil {
		return nil, err
	}
	var typeString string
	if err := decodeArg(args[0], 0, &typeString); err != nil {
		return nil, err
	}
	return m.Resolve(ctx, typeString)
}

// Resolve 解析并编码 ResolveResult；成功结果写入缓存
func (m *LayoutMethods) Resolve(ctx context.Context, typeString string) (json.RawMessage, error) {
	typeString = strings.TrimSpace(typeString)
	if typeString == "" {
		return nil, NewInvalidParamsError("type string is empty", nil)
	}

	if cached, ok := m.cache.Get(typeString); ok {
		return json.RawMessage(cached), nil
	}

	desc, err := m.resolver.Resolve(typeString, m.catalog.Table())
	if err != nil {
		return nil, NewResolveError(typeString, err)
	}

	encoded, err := json.Marshal(ResolveResult{
		TypeString: typeString,
		Descriptor: layout.ToJSON(desc),
		Rows:       layout.Describe(typeString, desc),
	})
	if err != nil {
		return nil, NewInternalError(err.Error(), nil)
	}
	m.cache.Set(typeString, encoded)
	return json.RawMessage(encoded), nil
}

// Entries 已加载声明摘要
func (m *LayoutMethods) Entries() []solcast.Entry {
	return m.catalog.Entries()
}

// ListDeclarations 列出已加载的结构体与枚举
// Method: layout_listDeclarations
func (m *LayoutMethods) ListDeclarations(ctx context.Context, params json.RawMessage) (interface{}, error) {
	if _, err := positional(params, 0, 0); err != nil {
		return nil, err
	}
	return m.Entries(), nil
}
