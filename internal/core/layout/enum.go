package layout

import (
	"regexp"

	"github.com/weisyn/slotlayout/pkg/types"
)

var enumPattern = regexp.MustCompile(`^enum\s+([A-Za-z_$][A-Za-z0-9_$.]*)$`)

// buildEnum enum <Name>
func (r *Resolver) buildEnum(res *resolution, typeString string) (types.TypeDescriptor, error) {
	m := enumPattern.FindStringSubmatch(trimQualifier(typeString))
	if m == nil {
		return nil, newError(KindUnparsableType, typeString, "expected 'enum <Name>'")
	}
	name := m[1]

	decl := findEnum(res.table, name)
	if decl == nil {
		return nil, newError(KindUnknownDeclaration, typeString, "no enum named "+name)
	}
	count := uint64(len(decl.Members))
	if count == 0 {
		return nil, newError(KindEmptyDeclaration, typeString, "enum "+name+" has no values")
	}

	width := enumByteWidth(count)
	if width == 0 && r.clampSingleEnum {
		width = 1
	}
	return &types.EnumType{Name: decl.Name, ValueCount: count, Bytes: width}, nil
}

// enumByteWidth 最小的 n 使 256^n ≥ count；count 为 1 时得 0
func enumByteWidth(count uint64) uint64 {
	var width uint64
	capacity := uint64(1)
	for capacity < count && width < 8 {
		capacity <<= 8
		width++
	}
	return width
}
