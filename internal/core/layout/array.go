package layout

import (
	"math/bits"
	"strconv"
	"strings"

	"github.com/weisyn/slotlayout/pkg/types"
)

// buildArray <element><qualifier?>[<size?>]<qualifier?>
//
// 元素类型取最后一组方括号之前的全部内容，因此 uint8[2][3] 的元素是 uint8[2]。
func (r *Resolver) buildArray(res *resolution, typeString string) (types.TypeDescriptor, error) {
	s := trimQualifier(typeString)
	if !strings.HasSuffix(s, "]") {
		return nil, newError(KindUnparsableType, typeString, "array type must end with ']'")
	}
	open := strings.LastIndexByte(s, '[')
	if open < 0 {
		return nil, newError(KindUnparsableType, typeString, "missing '['")
	}

	sizeToken := s[open+1 : len(s)-1]
	elementString := trimQualifier(s[:open])
	if elementString == "" {
		return nil, newError(KindUnparsableType, typeString, "missing element type")
	}

	size := types.DynamicSize
	if sizeToken != "" {
		n, err := strconv.ParseUint(sizeToken, 10, 64)
		if err != nil {
			return nil, newError(KindUnparsableType, typeString, "array size must be a decimal literal")
		}
		if n == 0 {
			return nil, newError(KindUnparsableType, typeString, "zero-length array")
		}
		size = types.FixedSize(n)
	}

	element, err := res.resolve(elementString)
	if err != nil {
		return nil, wrapChild(typeString, "element "+elementString, err)
	}

	slots, ok := arraySlots(element, size)
	if !ok {
		return nil, newError(KindUnparsableType, typeString, "array occupies more slots than addressable")
	}
	return &types.ArrayType{Element: element, Size: size, Slots: slots}, nil
}

// arraySlots 定长数组：小元素按 floor(32/宽度) 个一槽打包，否则逐元素乘槽数
func arraySlots(element types.TypeDescriptor, size types.ArraySize) (uint64, bool) {
	if size.Dynamic {
		return 1, true
	}

	width := element.StorageBytes()
	if width > 0 && width < types.SlotSize {
		perSlot := types.SlotSize / width
		return ceilDiv(size.Length, perSlot), true
	}

	hi, lo := bits.Mul64(size.Length, element.StorageSlots())
	if hi != 0 {
		return 0, false
	}
	return lo, true
}

func ceilDiv(a, b uint64) uint64 {
	return a/b + boolToUint(a%b != 0)
}

func boolToUint(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
