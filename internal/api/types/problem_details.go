// Package types API 层共享的错误模型
package types

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// ProblemDetails 基于 RFC7807 的错误描述（含 code/layer/traceId 扩展）
type ProblemDetails struct {
	// RFC7807 标准字段
	Type     string `json:"type,omitempty"`
	Title    string `json:"title,omitempty"`
	Status   int    `json:"status,omitempty"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`

	// 扩展字段
	Code        string                 `json:"code"`
	Layer       string                 `json:"layer"`
	UserMessage string                 `json:"userMessage"`
	Details     map[string]interface{} `json:"details,omitempty"`
	TraceID     string                 `json:"traceId"`
	Timestamp   string                 `json:"timestamp"`
}

// Error 实现 error 接口
func (p *ProblemDetails) Error() string {
	if p.Detail != "" {
		return p.Detail
	}
	return p.UserMessage
}

// WriteJSON 将 Problem Details 写入 HTTP 响应
func (p *ProblemDetails) WriteJSON(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

// NewProblemDetails 创建新的 Problem Details
func NewProblemDetails(
	code string,
	layer string,
	userMessage string,
	detail string,
	status int,
	details map[string]interface{},
) *ProblemDetails {
	if details == nil {
		details = make(map[string]interface{})
	}

	return &ProblemDetails{
		Title:       http.StatusText(status),
		Code:        code,
		Layer:       layer,
		UserMessage: userMessage,
		Detail:      detail,
		Status:      status,
		Details:     details,
		TraceID:     uuid.New().String(),
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
}

// IsProblemDetails 检查错误链中是否有 Problem Details
func IsProblemDetails(err error) (*ProblemDetails, bool) {
	var pd *ProblemDetails
	if errors.As(err, &pd) {
		return pd, true
	}
	return nil, false
}

// 错误码常量
const (
	// 存储布局解析错误
	CodeLayoutUnparsableType       = "LAYOUT_UNPARSABLE_TYPE"
	CodeLayoutUnknownDeclaration   = "LAYOUT_UNKNOWN_DECLARATION"
	CodeLayoutChildFailure         = "LAYOUT_CHILD_FAILURE"
	CodeLayoutUnrecognizedCategory = "LAYOUT_UNRECOGNIZED_CATEGORY"
	CodeLayoutDepthLimit           = "LAYOUT_DEPTH_LIMIT_EXCEEDED"
	CodeLayoutCyclicDeclaration    = "LAYOUT_CYCLIC_DECLARATION"
	CodeLayoutEmptyDeclaration     = "LAYOUT_EMPTY_DECLARATION"

	// 链头错误
	CodeChainBlockNumberDecrease = "CHAIN_BLOCK_NUMBER_DECREASE"

	// 通用错误
	CodeCommonValidationError    = "COMMON_VALIDATION_ERROR"
	CodeCommonInternalError      = "COMMON_INTERNAL_ERROR"
	CodeCommonServiceUnavailable = "COMMON_SERVICE_UNAVAILABLE"
	CodeCommonRateLimited        = "COMMON_RATE_LIMITED"
)

// Layer 常量
const (
	LayerRPCGateway   = "rpc-gateway"
	LayerLayoutEngine = "layout-engine"
	LayerChainHead    = "chain-head"
)

type requestIDKey struct{}

// WithRequestID 将请求ID写入上下文
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFromContext 读取上下文中的请求ID
func RequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

type rpcMethodKey struct{}

// WithRPCMethodSlot 在上下文中放置方法名槽位，JSON-RPC 层解析请求后回填
func WithRPCMethodSlot(ctx context.Context) (context.Context, *string) {
	slot := new(string)
	return context.WithValue(ctx, rpcMethodKey{}, slot), slot
}

// SetRPCMethod 回填 JSON-RPC 方法名；上下文中没有槽位时忽略
func SetRPCMethod(ctx context.Context, method string) {
	if slot, ok := ctx.Value(rpcMethodKey{}).(*string); ok {
		*slot = method
	}
}
