package types

import "encoding/json"

// Response JSON-RPC 2.0 响应
//
// 成功时总是输出 result 字段（即使为 null），失败时只输出 error。
type Response struct {
	JSONRPC string
	ID      interface{}
	Result  interface{}
	Error   *ErrorResponse
}

// ErrorResponse JSON-RPC 2.0 错误响应
type ErrorResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type successEnvelope struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result"`
}

type errorEnvelope struct {
	JSONRPC string         `json:"jsonrpc"`
	ID      interface{}    `json:"id"`
	Error   *ErrorResponse `json:"error"`
}

// MarshalJSON 按成功/失败选择输出字段
func (r Response) MarshalJSON() ([]byte, error) {
	if r.Error != nil {
		return json.Marshal(errorEnvelope{JSONRPC: r.JSONRPC, ID: r.ID, Error: r.Error})
	}
	return json.Marshal(successEnvelope{JSONRPC: r.JSONRPC, ID: r.ID, Result: r.Result})
}

// UnmarshalJSON 客户端解析响应
func (r *Response) UnmarshalJSON(data []byte) error {
	var raw struct {
		JSONRPC string          `json:"jsonrpc"`
		ID      interface{}     `json:"id"`
		Result  json.RawMessage `json:"result"`
		Error   *ErrorResponse  `json:"error"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.JSONRPC, r.ID, r.Error = raw.JSONRPC, raw.ID, raw.Error
	if len(raw.Result) > 0 {
		r.Result = raw.Result
	}
	return nil
}
