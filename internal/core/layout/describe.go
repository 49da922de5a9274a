package layout

import (
	"strconv"

	"github.com/weisyn/slotlayout/pkg/types"
)

// Row 布局报告中的一行
type Row struct {
	Path        string         `json:"path"`
	Category    types.Category `json:"category"`
	Slots       uint64         `json:"storageSlots"`
	Bytes       uint64         `json:"storageBytes"`
	Placeholder bool           `json:"placeholder,omitempty"`
	Note        string         `json:"note,omitempty"`
}

// Describe 将描述树展开为先序的扁平行列表
//
// 数组元素路径追加 "[]"，结构体成员路径追加 ".成员名"。
func Describe(root string, d types.TypeDescriptor) []Row {
	var rows []Row
	describeInto(&rows, root, d)
	return rows
}

func describeInto(rows *[]Row, path string, d types.TypeDescriptor) {
	if d == nil {
		return
	}
	*rows = append(*rows, Row{
		Path:        path,
		Category:    d.Category(),
		Slots:       d.StorageSlots(),
		Bytes:       d.StorageBytes(),
		Placeholder: types.IsPlaceholderWidth(d),
		Note:        noteFor(d),
	})

	switch t := d.(type) {
	case *types.ArrayType:
		describeInto(rows, path+"[]", t.Element)
	case *types.StructType:
		for _, m := range t.Members {
			describeInto(rows, path+"."+m.Name, m.Type)
		}
	}
}

func noteFor(d types.TypeDescriptor) string {
	switch t := d.(type) {
	case types.IntegerType:
		if t.Implicit {
			return "implicit width"
		}
	case *types.ArrayType:
		if t.Size.Dynamic {
			return "dynamic"
		}
		return "length " + strconv.FormatUint(t.Size.Length, 10)
	case *types.StructType:
		return "struct " + t.Name
	case *types.EnumType:
		return "enum " + t.Name + ", " + strconv.FormatUint(t.ValueCount, 10) + " values"
	}
	return ""
}

// DescriptorJSON 描述树的 JSON 形式
type DescriptorJSON struct {
	Category     types.Category `json:"category"`
	StorageSlots uint64         `json:"storageSlots"`
	StorageBytes uint64         `json:"storageBytes"`

	BitWidth   uint64 `json:"bitWidth,omitempty"`
	Signed     bool   `json:"signed,omitempty"`
	Implicit   bool   `json:"implicit,omitempty"`
	ByteWidth  uint64 `json:"byteWidth,omitempty"`
	Length     uint64 `json:"length,omitempty"`
	Dynamic    bool   `json:"dynamic,omitempty"`
	Name       string `json:"name,omitempty"`
	ValueCount uint64 `json:"valueCount,omitempty"`

	Placeholder bool            `json:"placeholder,omitempty"`
	Element     *DescriptorJSON `json:"element,omitempty"`
	Members     []MemberJSON    `json:"members,omitempty"`
}

// MemberJSON 结构体成员
type MemberJSON struct {
	Name string          `json:"name"`
	Type *DescriptorJSON `json:"type"`
}

// ToJSON 转换为可序列化形式
func ToJSON(d types.TypeDescriptor) *DescriptorJSON {
	if d == nil {
		return nil
	}
	out := &DescriptorJSON{
		Category:     d.Category(),
		StorageSlots: d.StorageSlots(),
		StorageBytes: d.StorageBytes(),
		Placeholder:  types.IsPlaceholderWidth(d),
	}

	switch t := d.(type) {
	case types.IntegerType:
		out.BitWidth = t.BitWidth
		out.Signed = t.Signed
		out.Implicit = t.Implicit
	case types.FixedBytesType:
		out.ByteWidth = t.ByteWidth
	case *types.ArrayType:
		out.Length = t.Size.Length
		out.Dynamic = t.Size.Dynamic
		out.Element = ToJSON(t.Element)
	case *types.StructType:
		out.Name = t.Name
		out.Members = make([]MemberJSON, 0, len(t.Members))
		for _, m := range t.Members {
			out.Members = append(out.Members, MemberJSON{Name: m.Name, Type: ToJSON(m.Type)})
		}
	case *types.EnumType:
		out.Name = t.Name
		out.ValueCount = t.ValueCount
	}
	return out
}
