package methods

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// Handler JSON-RPC 方法处理函数
type Handler func(ctx context.Context, params json.RawMessage) (interface{}, error)

// positional 解析位置参数数组；缺省参数视为空数组
func positional(params json.RawMessage, min, max int) ([]json.RawMessage, error) {
	var args []json.RawMessage
	trimmed := bytes.TrimSpace(params)
	if len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
		if err := json.Unmarshal(trimmed, &args); err != nil {
			return nil, NewInvalidParamsError("params must be an array", nil)
		}
	}
	if len(args) < min || len(args) > max {
		return nil, NewInvalidParamsError(
			fmt.Sprintf("expected %d to %d params, got %d", min, max, len(args)),
			map[string]interface{}{"count": len(args)},
		)
	}
	return args, nil
}

// decodeArg 解码单个参数
func decodeArg(raw json.RawMessage, index int, out interface{}) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return NewInvalidParamsError(
			fmt.Sprintf("invalid param %d: %v", index, err),
			map[string]interface{}{"index": index},
		)
	}
	return nil
}
