package layout

import (
	"regexp"
	"strconv"

	"github.com/weisyn/slotlayout/pkg/types"
)

var (
	integerPattern    = regexp.MustCompile(`^u?int([0-9]*)$`)
	fixedBytesPattern = regexp.MustCompile(`^bytes([0-9]+)$`)
)

// buildInteger uint<N>/int<N>；裸 uint/int 使用配置的默认位宽
func (r *Resolver) buildInteger(typeString string, signed bool) (types.TypeDescriptor, error) {
	token := leadingToken(typeString)
	m := integerPattern.FindStringSubmatch(token)
	if m == nil {
		return nil, newError(KindUnparsableType, typeString, "expected uint<N> or int<N>")
	}

	if m[1] == "" {
		return types.IntegerType{
			BitWidth: uint64(r.bareIntegerWidth),
			Signed:   signed,
			Implicit: true,
		}, nil
	}

	bits, err := strconv.ParseUint(m[1], 10, 16)
	if err != nil || bits < 8 || bits > 256 || bits%8 != 0 {
		return nil, newError(KindUnparsableType, typeString, "integer width must be a multiple of 8 in [8, 256]")
	}
	return types.IntegerType{BitWidth: bits, Signed: signed}, nil
}

// buildFixedBytes bytes<N>，N 取 1..32
func (r *Resolver) buildFixedBytes(typeString string) (types.TypeDescriptor, error) {
	m := fixedBytesPattern.FindStringSubmatch(leadingToken(typeString))
	if m == nil {
		return nil, newError(KindUnparsableType, typeString, "expected bytes<N>")
	}
	width, err := strconv.ParseUint(m[1], 10, 8)
	if err != nil || width < 1 || width > types.SlotSize {
		return nil, newError(KindUnparsableType, typeString, "fixed bytes width must be in [1, 32]")
	}
	return types.FixedBytesType{ByteWidth: width}, nil
}

// buildScalar 其余无参数的标量
func buildScalar(category types.Category) types.TypeDescriptor {
	switch category {
	case types.CategoryAddress:
		return types.AddressType{}
	case types.CategoryBool:
		return types.BoolType{}
	case types.CategoryBytes:
		return types.DynamicBytesType{}
	case types.CategoryString:
		return types.StringType{}
	}
	return nil
}
