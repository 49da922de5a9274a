package layout

import (
	"errors"
	"fmt"
)

// ErrorKind 解析失败类别
type ErrorKind string

const (
	KindUnparsableType         ErrorKind = "UnparsableType"
	KindUnknownDeclaration     ErrorKind = "UnknownDeclaration"
	KindPropagatedChildFailure ErrorKind = "PropagatedChildFailure"
	KindUnrecognizedCategory   ErrorKind = "UnrecognizedCategory"
	KindDepthLimitExceeded     ErrorKind = "DepthLimitExceeded"
	KindCyclicDeclaration      ErrorKind = "CyclicDeclaration"
	KindEmptyDeclaration       ErrorKind = "EmptyDeclaration"
)

// 每个类别对应的哨兵错误，配合 errors.Is 使用
var (
	ErrUnparsableType         = errors.New("unparsable type")
	ErrUnknownDeclaration     = errors.New("unknown declaration")
	ErrPropagatedChildFailure = errors.New("nested type failed to resolve")
	ErrUnrecognizedCategory   = errors.New("unrecognized type category")
	ErrDepthLimitExceeded     = errors.New("resolution depth limit exceeded")
	ErrCyclicDeclaration      = errors.New("cyclic declaration")
	ErrEmptyDeclaration       = errors.New("empty declaration")
)

var sentinels = map[ErrorKind]error{
	KindUnparsableType:         ErrUnparsableType,
	KindUnknownDeclaration:     ErrUnknownDeclaration,
	KindPropagatedChildFailure: ErrPropagatedChildFailure,
	KindUnrecognizedCategory:   ErrUnrecognizedCategory,
	KindDepthLimitExceeded:     ErrDepthLimitExceeded,
	KindCyclicDeclaration:      ErrCyclicDeclaration,
	KindEmptyDeclaration:       ErrEmptyDeclaration,
}

// ResolveError 结构化解析错误
//
// TypeString 是出错位置的原始类型字符串；嵌套失败时 Cause 保存子错误，
// 可以沿 Cause 链找到最内层的真实原因。
type ResolveError struct {
	Kind       ErrorKind
	TypeString string
	Detail     string
	Cause      error
}

func (e *ResolveError) Error() string {
	msg := fmt.Sprintf("%s: %q", e.Kind, e.TypeString)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap 同时暴露类别哨兵与子错误
func (e *ResolveError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if sentinel, ok := sentinels[e.Kind]; ok {
		errs = append(errs, sentinel)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// Root 返回 Cause 链最内层的 ResolveError
func (e *ResolveError) Root() *ResolveError {
	current := e
	for {
		var next *ResolveError
		if current.Cause == nil || !errors.As(current.Cause, &next) {
			return current
		}
		current = next
	}
}

func newError(kind ErrorKind, typeString, detail string) *ResolveError {
	return &ResolveError{Kind: kind, TypeString: typeString, Detail: detail}
}

// wrapChild 将子类型失败包装为 PropagatedChildFailure
func wrapChild(typeString, detail string, child error) error {
	return &ResolveError{
		Kind:       KindPropagatedChildFailure,
		TypeString: typeString,
		Detail:     detail,
		Cause:      child,
	}
}

// KindOf 提取错误类别；非 ResolveError 返回空串
func KindOf(err error) ErrorKind {
	var re *ResolveError
	if errors.As(err, &re) {
		return re.Kind
	}
	return ""
}
