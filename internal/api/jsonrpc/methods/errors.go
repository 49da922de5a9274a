package methods

import (
	"errors"
	"fmt"
	"net/http"

	apitypes "github.com/weisyn/slotlayout/internal/api/types"
	"github.com/weisyn/slotlayout/internal/core/layout"
)

// NewInvalidParamsError 创建参数验证错误（Problem Details）
func NewInvalidParamsError(detail string, details map[string]interface{}) *apitypes.ProblemDetails {
	if details == nil {
		details = make(map[string]interface{})
	}
	details["detail"] = detail

	return apitypes.NewProblemDetails(
		apitypes.CodeCommonValidationError,
		apitypes.LayerRPCGateway,
		"请求参数验证失败，请检查输入参数。",
		detail,
		http.StatusBadRequest,
		details,
	)
}

// NewInternalError 创建内部错误（Problem Details）
func NewInternalError(detail string, details map[string]interface{}) *apitypes.ProblemDetails {
	return apitypes.NewProblemDetails(
		apitypes.CodeCommonInternalError,
		apitypes.LayerRPCGateway,
		"服务器内部错误，请稍后重试。",
		detail,
		http.StatusInternalServerError,
		details,
	)
}

// NewBlockNumberDecreaseError 区块计数回退
func NewBlockNumberDecreaseError(current, requested uint64) *apitypes.ProblemDetails {
	return apitypes.NewProblemDetails(
		apitypes.CodeChainBlockNumberDecrease,
		apitypes.LayerChainHead,
		"区块计数只能增加。",
		fmt.Sprintf("block number cannot decrease from %d to %d", current, requested),
		http.StatusConflict,
		map[string]interface{}{
			"current":   current,
			"requested": requested,
		},
	)
}

var layoutErrorCodes = map[layout.ErrorKind]struct {
	code    string
	message string
	status  int
}{
	layout.KindUnparsableType:         {apitypes.CodeLayoutUnparsableType, "类型字符串格式无效。", http.StatusUnprocessableEntity},
	layout.KindUnknownDeclaration:     {apitypes.CodeLayoutUnknownDeclaration, "引用的结构体或枚举未声明。", http.StatusNotFound},
	layout.KindPropagatedChildFailure: {apitypes.CodeLayoutChildFailure, "嵌套类型解析失败。", http.StatusUnprocessableEntity},
	layout.KindUnrecognizedCategory:   {apitypes.CodeLayoutUnrecognizedCategory, "不支持的类型。", http.StatusUnprocessableEntity},
	layout.KindDepthLimitExceeded:     {apitypes.CodeLayoutDepthLimit, "类型嵌套层级过深。", http.StatusUnprocessableEntity},
	layout.KindCyclicDeclaration:      {apitypes.CodeLayoutCyclicDeclaration, "声明存在循环引用。", http.StatusUnprocessableEntity},
	layout.KindEmptyDeclaration:       {apitypes.CodeLayoutEmptyDeclaration, "声明没有成员。", http.StatusUnprocessableEntity},
}

// NewResolveError 将解析错误映射为 Problem Details
//
// details 中携带顶层类型、错误类别以及最内层的失败位置。
func NewResolveError(typeString string, err error) *apitypes.ProblemDetails {
	var re *layout.ResolveError
	if !errors.As(err, &re) {
		return NewInternalError(err.Error(), map[string]interface{}{"type": typeString})
	}

	mapping, ok := layoutErrorCodes[re.Kind]
	if !ok {
		return NewInternalError(err.Error(), map[string]interface{}{"type": typeString})
	}

	root := re.Root()
	return apitypes.NewProblemDetails(
		mapping.code,
		apitypes.LayerLayoutEngine,
		mapping.message,
		err.Error(),
		mapping.status,
		map[string]interface{}{
			"type":      typeString,
			"kind":      string(re.Kind),
			"rootKind":  string(root.Kind),
			"rootType":  root.TypeString,
			"rootCause": root.Detail,
		},
	)
}
