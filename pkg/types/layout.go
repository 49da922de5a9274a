package types

// SlotSize 存储槽宽度（字节）
const SlotSize = 32

// Category 类型分类标签
type Category string

const (
	CategoryAddress Category = "address"
	CategoryBool    Category = "bool"
	CategoryUint    Category = "uint"
	CategoryInt     Category = "int"
	CategoryBytes   Category = "bytes"
	CategoryBytesX  Category = "bytesX"
	CategoryString  Category = "string"
	CategoryArray   Category = "array"
	CategoryStruct  Category = "struct"
	CategoryEnum    Category = "enum"
)

// Categories 全部已知分类，顺序稳定
var Categories = []Category{
	CategoryAddress, CategoryBool, CategoryUint, CategoryInt, CategoryBytes,
	CategoryBytesX, CategoryString, CategoryArray, CategoryStruct, CategoryEnum,
}

// IsKnown 判断分类是否属于固定集合
func (c Category) IsKnown() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// TypeDescriptor 存储布局描述（封闭的标签联合）
//
// 只有本包内的类型可以实现该接口。描述在构建后不可变，
// 且独占其嵌套描述。
type TypeDescriptor interface {
	// StorageSlots 作为声明唯一占用者时占用的槽数（≥1）
	StorageSlots() uint64
	// StorageBytes 标量为真实宽度；复合类型固定为 32
	StorageBytes() uint64
	// Category 分类标签
	Category() Category

	isTypeDescriptor()
}

// AddressType address 描述
type AddressType struct{}

func (AddressType) StorageSlots() uint64 { return 1 }
func (AddressType) StorageBytes() uint64 { return 20 }
func (AddressType) Category() Category   { return CategoryAddress }
func (AddressType) isTypeDescriptor()    {}

// BoolType bool 描述
type BoolType struct{}

func (BoolType) StorageSlots() uint64 { return 1 }
func (BoolType) StorageBytes() uint64 { return 1 }
func (BoolType) Category() Category   { return CategoryBool }
func (BoolType) isTypeDescriptor()    {}

// IntegerType uint<N>/int<N> 描述
type IntegerType struct {
	BitWidth uint64
	Signed   bool
	// Implicit 为 true 表示位宽来自裸关键字 uint/int 的默认别名
	Implicit bool
}

func (IntegerType) StorageSlots() uint64   { return 1 }
func (t IntegerType) StorageBytes() uint64 { return t.BitWidth / 8 }
func (t IntegerType) Category() Category {
	if t.Signed {
		return CategoryInt
	}
	return CategoryUint
}
func (IntegerType) isTypeDescriptor() {}

// FixedBytesType bytes<N> 描述
type FixedBytesType struct {
	ByteWidth uint64
}

func (FixedBytesType) StorageSlots() uint64   { return 1 }
func (t FixedBytesType) StorageBytes() uint64 { return t.ByteWidth }
func (FixedBytesType) Category() Category     { return CategoryBytesX }
func (FixedBytesType) isTypeDescriptor()      {}

// DynamicBytesType bytes 描述；StorageBytes 为占位值
type DynamicBytesType struct{}

func (DynamicBytesType) StorageSlots() uint64 { return 1 }
func (DynamicBytesType) StorageBytes() uint64 { return SlotSize }
func (DynamicBytesType) Category() Category   { return CategoryBytes }
func (DynamicBytesType) isTypeDescriptor()    {}

// StringType string 描述；StorageBytes 为占位值
type StringType struct{}

func (StringType) StorageSlots() uint64 { return 1 }
func (StringType) StorageBytes() uint64 { return SlotSize }
func (StringType) Category() Category   { return CategoryString }
func (StringType) isTypeDescriptor()    {}

// ArraySize 数组长度；Dynamic 表示 T[]
type ArraySize struct {
	Length  uint64
	Dynamic bool
}

// DynamicSize 动态数组长度标记
var DynamicSize = ArraySize{Dynamic: true}

// FixedSize 定长数组长度
func FixedSize(n uint64) ArraySize {
	return ArraySize{Length: n}
}

// ArrayType T[N] / T[] 描述
type ArrayType struct {
	Element TypeDescriptor
	Size    ArraySize
	Slots   uint64
}

func (t *ArrayType) StorageSlots() uint64 { return t.Slots }
func (*ArrayType) StorageBytes() uint64   { return SlotSize }
func (*ArrayType) Category() Category     { return CategoryArray }
func (*ArrayType) isTypeDescriptor()      {}

// StructMember 结构体成员描述
type StructMember struct {
	Name string
	Type TypeDescriptor
}

// StructType struct 描述
type StructType struct {
	Name    string
	Members []StructMember
	Slots   uint64
}

func (t *StructType) StorageSlots() uint64 { return t.Slots }
func (*StructType) StorageBytes() uint64   { return SlotSize }
func (*StructType) Category() Category     { return CategoryStruct }
func (*StructType) isTypeDescriptor()      {}

// EnumType enum 描述
type EnumType struct {
	Name       string
	ValueCount uint64
	Bytes      uint64
}

func (*EnumType) StorageSlots() uint64   { return 1 }
func (t *EnumType) StorageBytes() uint64 { return t.Bytes }
func (*EnumType) Category() Category     { return CategoryEnum }
func (*EnumType) isTypeDescriptor()      {}

// IsPlaceholderWidth 判断 StorageBytes 是否只是占位值而非真实固定宽度
//
// bytes/string 的真实长度依赖数据，复合类型在声明位置独占整槽。
func IsPlaceholderWidth(d TypeDescriptor) bool {
	switch d.(type) {
	case DynamicBytesType, StringType, *ArrayType, *StructType:
		return true
	default:
		return false
	}
}
