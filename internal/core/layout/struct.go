package layout

import (
	"fmt"
	"regexp"

	"github.com/weisyn/slotlayout/pkg/types"
)

var structPattern = regexp.MustCompile(`^struct\s+([A-Za-z_$][A-Za-z0-9_$.]*)$`)

// buildStruct struct <Name><qualifier?>
//
// 成员按字节数累加后整体重新打包：slots = ceil(Σ成员字节 / 32)。
// 任一成员失败则整个结构体失败，不返回部分成员。
func (r *Resolver) buildStruct(res *resolution, typeString string) (types.TypeDescriptor, error) {
	m := structPattern.FindStringSubmatch(trimQualifier(typeString))
	if m == nil {
		return nil, newError(KindUnparsableType, typeString, "expected 'struct <Name>'")
	}
	name := m[1]

	decl := findStruct(res.table, name)
	if decl == nil {
		return nil, newError(KindUnknownDeclaration, typeString, "no struct named "+name)
	}
	if len(decl.Members) == 0 {
		return nil, newError(KindEmptyDeclaration, typeString, "struct "+name+" has no members")
	}

	if res.visiting[decl] {
		return nil, newError(KindCyclicDeclaration, typeString, "struct "+name+" contains itself")
	}
	res.visiting[decl] = true
	defer delete(res.visiting, decl)

	members := make([]types.StructMember, 0, len(decl.Members))
	var totalBytes uint64
	for _, member := range decl.Members {
		resolved, err := res.resolve(member.TypeString)
		if err != nil {
			return nil, wrapChild(typeString, fmt.Sprintf("member %s (%s)", member.Name, member.TypeString), err)
		}
		members = append(members, types.StructMember{Name: member.Name, Type: resolved})
		totalBytes += resolved.StorageBytes()
	}

	slots := ceilDiv(totalBytes, types.SlotSize)
	if slots == 0 {
		slots = 1
	}
	return &types.StructType{Name: decl.Name, Members: members, Slots: slots}, nil
}
