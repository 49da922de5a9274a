package types

// 标准 JSON-RPC 2.0 错误码
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603

	// CodeServerError -32000 ~ -32099 预留给实现方；处理器错误统一使用该码
	CodeServerError = -32000
)
