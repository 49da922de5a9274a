// Package jsonrpc JSON-RPC 2.0 over HTTP
//
// 处理器返回的错误必须是 *ProblemDetails，服务器将其嵌入 JSON-RPC 错误的 data 字段。
package jsonrpc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"sort"
	"sync"

	"github.com/weisyn/slotlayout/internal/api/jsonrpc/methods"
	"github.com/weisyn/slotlayout/internal/api/jsonrpc/types"
	apitypes "github.com/weisyn/slotlayout/internal/api/types"
	"go.uber.org/zap"
)

// MethodHandler JSON-RPC方法处理器
type MethodHandler func(ctx context.Context, params json.RawMessage) (interface{}, error)

// Server JSON-RPC 2.0 服务器
type Server struct {
	logger         *zap.Logger
	maxRequestSize int64

	mu      sync.RWMutex
	methods map[string]MethodHandler
}

// NewServer 创建JSON-RPC服务器；maxRequestSize ≤ 0 表示不限制
func NewServer(logger *zap.Logger, maxRequestSize int64) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		logger:         logger,
		maxRequestSize: maxRequestSize,
		methods:        make(map[string]MethodHandler),
	}
}

// RegisterMethod 注册JSON-RPC方法
func (s *Server) RegisterMethod(method string, handler MethodHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.methods[method] = handler
}

// Methods 已注册的方法名（排序）
func (s *Server) Methods() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.methods))
	for name := range s.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Server) lookup(method string) (MethodHandler, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.methods[method]
	return h, ok
}

// ServeHTTP 处理HTTP请求
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := apitypes.RequestIDFromContext(r.Context())

	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("JSON-RPC handler panic recovered",
				zap.Any("panic", rec),
				zap.String("path", r.URL.Path),
				zap.ByteString("stack", debug.Stack()),
			)
			problem := apitypes.NewProblemDetails(
				apitypes.CodeCommonInternalError,
				apitypes.LayerRPCGateway,
				"服务器内部错误，请稍后重试。",
				fmt.Sprintf("Panic recovered: %v", rec),
				http.StatusInternalServerError,
				nil,
			)
			s.writeErrorWithProblemDetails(w, requestID, nil, problem, types.CodeInternalError, "")
		}
	}()

	if r.Method != http.MethodPost {
		problem := apitypes.NewProblemDetails(
			apitypes.CodeCommonValidationError,
			apitypes.LayerRPCGateway,
			"请求方法无效，仅支持 POST 方法。",
			"Only POST method is allowed",
			http.StatusMethodNotAllowed,
			nil,
		)
		s.writeErrorWithProblemDetails(w, requestID, nil, problem, types.CodeInvalidRequest, "")
		return
	}

	body := r.Body
	if s.maxRequestSize > 0 {
		body = http.MaxBytesReader(w, r.Body, s.maxRequestSize)
	}

	var req types.Request
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		problem := apitypes.NewProblemDetails(
			apitypes.CodeCommonValidationError,
			apitypes.LayerRPCGateway,
			"请求格式无效，无法解析 JSON。",
			fmt.Sprintf("Parse error: %v", err),
			http.StatusBadRequest,
			nil,
		)
		s.writeErrorWithProblemDetails(w, requestID, nil, problem, types.CodeParseError, "")
		return
	}

	apitypes.SetRPCMethod(r.Context(), req.Method)

	if req.JSONRPC != "2.0" {
		problem := apitypes.NewProblemDetails(
			apitypes.CodeCommonValidationError,
			apitypes.LayerRPCGateway,
			"请求格式无效，jsonrpc 字段必须为 '2.0'。",
			"jsonrpc field must be '2.0'",
			http.StatusBadRequest,
			map[string]interface{}{"provided": req.JSONRPC},
		)
		s.writeErrorWithProblemDetails(w, requestID, req.ID, problem, types.CodeInvalidRequest, req.Method)
		return
	}

	handler, ok := s.lookup(req.Method)
	if !ok {
		problem := apitypes.NewProblemDetails(
			apitypes.CodeCommonValidationError,
			apitypes.LayerRPCGateway,
			"方法不存在，请检查方法名称。",
			fmt.Sprintf("Method '%s' not found", req.Method),
			http.StatusNotFound,
			map[string]interface{}{"method": req.Method},
		)
		s.writeErrorWithProblemDetails(w, requestID, req.ID, problem, types.CodeMethodNotFound, req.Method)
		return
	}

	result, err := handler(r.Context(), req.Params)
	if err != nil {
		problem, ok := apitypes.IsProblemDetails(err)
		if !ok {
			s.logger.Error("Handler returned non-ProblemDetails error",
				zap.String("method", req.Method),
				zap.Error(err))
			problem = apitypes.NewProblemDetails(
				apitypes.CodeCommonInternalError,
				apitypes.LayerRPCGateway,
				"服务器内部错误，请稍后重试。",
				fmt.Sprintf("Internal error: %v", err),
				http.StatusInternalServerError,
				map[string]interface{}{"method": req.Method},
			)
		}
		code := types.CodeServerError
		if problem.Code == apitypes.CodeCommonValidationError {
			code = types.CodeInvalidParams
		}
		s.writeErrorWithProblemDetails(w, requestID, req.ID, problem, code, req.Method)
		return
	}

	s.writeSuccess(w, req.ID, result)
}

// writeSuccess 写入成功响应
func (s *Server) writeSuccess(w http.ResponseWriter, id interface{}, result interface{}) {
	resp := types.Response{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// writeErrorWithProblemDetails 写入包含 Problem Details 的错误响应
func (s *Server) writeErrorWithProblemDetails(w http.ResponseWriter, requestID string, id interface{}, problem *apitypes.ProblemDetails, jsonrpcCode int, method string) {
	// 已写过响应头则放弃
	if w.Header().Get("Content-Type") != "" {
		return
	}
	if problem.Instance == "" {
		problem.Instance = requestID
	}

	resp := types.Response{
		JSONRPC: "2.0",
		ID:      id,
		Error: &types.ErrorResponse{
			Code:    jsonrpcCode,
			Message: problem.UserMessage,
			Data:    problem,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	// 错误同样返回 200，错误信息在 body 中
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("Failed to encode error response", zap.Error(err))
	}

	s.logger.Warn("JSON-RPC error",
		zap.String("code", problem.Code),
		zap.String("traceId", problem.TraceID),
		zap.String("method", method),
		zap.String("request_id", requestID),
		zap.Error(problem))
}

// HandlerGroup 一组 JSON-RPC 方法
type HandlerGroup interface {
	Handlers() map[string]methods.Handler
}

// RegisterGroup 注册一组方法
func (s *Server) RegisterGroup(group HandlerGroup) {
	for name, handler := range group.Handlers() {
		s.RegisterMethod(name, MethodHandler(handler))
	}
}
