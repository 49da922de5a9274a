// Package api 装配对外服务：JSON-RPC 方法与 HTTP 服务器
package api

import (
	"github.com/weisyn/slotlayout/internal/api/http"
	"github.com/weisyn/slotlayout/internal/api/jsonrpc"
	"go.uber.org/fx"
)

// Module 返回API模块选项
func Module() fx.Option {
	return fx.Module("api",
		jsonrpc.Module(),
		http.Module(),

		// 强制实例化HTTP服务器，使其生命周期钩子生效
		fx.Invoke(func(*http.Server) {}),
	)
}
