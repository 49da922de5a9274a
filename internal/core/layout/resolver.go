// Package layout 计算 Solidity 类型在 32 字节存储槽中的布局
//
// 输入是编译器语法树中的类型字符串和只读的用户声明表，输出是不可变的
// 类型描述树。每次调用都生成全新的描述树，失败时返回 *ResolveError，
// 不会返回部分构建的结果。
package layout

import (
	layoutconfig "github.com/weisyn/slotlayout/internal/config/layout"
	layoutiface "github.com/weisyn/slotlayout/pkg/interfaces/layout"
	"github.com/weisyn/slotlayout/pkg/types"
	"go.uber.org/zap"
)

// Resolver 存储布局解析器
//
// 构建后只读，可被多个 goroutine 并发使用。
type Resolver struct {
	maxDepth         int
	bareIntegerWidth int
	clampSingleEnum  bool

	logger  *zap.Logger
	metrics *Metrics
}

// New 创建解析器；options 为 nil 时使用默认配置
func New(options *layoutconfig.LayoutOptions, logger *zap.Logger, metrics *Metrics) *Resolver {
	defaults := layoutconfig.New(nil).GetOptions()
	if options == nil {
		options = defaults
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Resolver{
		maxDepth:         options.MaxDepth,
		bareIntegerWidth: options.BareIntegerWidth,
		clampSingleEnum:  options.ClampSingleEnum,
		logger:           logger,
		metrics:          metrics,
	}
	if r.maxDepth < 1 {
		r.maxDepth = defaults.MaxDepth
	}
	if r.bareIntegerWidth < 8 || r.bareIntegerWidth > 256 || r.bareIntegerWidth%8 != 0 {
		r.bareIntegerWidth = defaults.BareIntegerWidth
	}
	return r
}

var _ layoutiface.Resolver = (*Resolver)(nil)

var defaultResolver = New(nil, nil, nil)

// Resolve 使用默认配置解析类型
func Resolve(typeString string, table types.SymbolTable) (types.TypeDescriptor, error) {
	return defaultResolver.Resolve(typeString, table)
}

// resolution 单次顶层调用的状态
type resolution struct {
	resolver     *Resolver
	table        types.SymbolTable
	depth        int
	maxSeen      int
	rootCategory string
	// visiting 以声明指针为键；声明表的 key 与 Declaration.ID 都不保证唯一
	visiting map[*types.Declaration]bool
}

// Resolve 解析类型字符串
func (r *Resolver) Resolve(typeString string, table types.SymbolTable) (types.TypeDescriptor, error) {
	res := &resolution{
		resolver:     r,
		table:        table,
		rootCategory: "unknown",
		visiting:     make(map[*types.Declaration]bool),
	}

	desc, err := res.resolve(typeString)
	r.metrics.observe(res.rootCategory, res.maxSeen, err)

	if err != nil {
		r.logger.Debug("类型解析失败",
			zap.String("type", typeString),
			zap.String("kind", string(KindOf(err))),
			zap.Error(err))
		return nil, err
	}
	return desc, nil
}

// resolve 分类并分派到对应构建函数
func (res *resolution) resolve(typeString string) (types.TypeDescriptor, error) {
	r := res.resolver
	res.depth++
	defer func() { res.depth-- }()
	if res.depth > res.maxSeen {
		res.maxSeen = res.depth
	}
	if res.depth > r.maxDepth {
		return nil, newError(KindDepthLimitExceeded, typeString, "nesting deeper than configured limit")
	}

	category, err := Classify(typeString)
	if err != nil {
		return nil, err
	}
	if res.depth == 1 {
		res.rootCategory = string(category)
	}

	switch category {
	case types.CategoryAddress, types.CategoryBool, types.CategoryBytes, types.CategoryString:
		return buildScalar(category), nil
	case types.CategoryUint:
		return r.buildInteger(typeString, false)
	case types.CategoryInt:
		return r.buildInteger(typeString, true)
	case types.CategoryBytesX:
		return r.buildFixedBytes(typeString)
	case types.CategoryArray:
		return r.buildArray(res, typeString)
	case types.CategoryStruct:
		return r.buildStruct(res, typeString)
	case types.CategoryEnum:
		return r.buildEnum(res, typeString)
	default:
		return nil, newError(KindUnrecognizedCategory, typeString, "no builder for category "+string(category))
	}
}
