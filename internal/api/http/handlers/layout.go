package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/weisyn/slotlayout/internal/api/jsonrpc/methods"
)

// LayoutHandler 存储布局 REST 端点
//
// 与 layout_resolveType / layout_listDeclarations 共用同一实现与缓存，
// 错误通过 c.Error 交给 ErrorHandler 中间件输出 Problem Details。
type LayoutHandler struct {
	methods *methods.LayoutMethods
}

// NewLayoutHandler 创建存储布局处理器
func NewLayoutHandler(layoutMethods *methods.LayoutMethods) *LayoutHandler {
	return &LayoutHandler{methods: layoutMethods}
}

// RegisterRoutes 注册存储布局路由
func (h *LayoutHandler) RegisterRoutes(r gin.IRouter) {
	group := r.Group("/layout")
	group.GET("", h.Resolve)
	group.GET("/declarations", h.ListDeclarations)
}

// Resolve 解析类型字符串
//
// GET /api/v1/layout?type=<类型字符串>
func (h *LayoutHandler) Resolve(c *gin.Context) {
	result, err := h.methods.Resolve(c.Request.Context(), c.Query("type"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", result)
}

// ListDeclarations 列出已加载的声明
//
// GET /api/v1/layout/declarations
func (h *LayoutHandler) ListDeclarations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"declarations": h.methods.Entries(),
	})
}
