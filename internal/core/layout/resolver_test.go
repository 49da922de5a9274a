package layout

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	layoutconfig "github.com/weisyn/slotlayout/internal/config/layout"
	"github.com/weisyn/slotlayout/pkg/types"
)

func structDecl(id int64, name string, members ...string) *types.Declaration {
	decl := &types.Declaration{ID: id, Kind: types.DeclarationStruct, Name: name}
	for i, typeString := range members {
		decl.Members = append(decl.Members, types.DeclarationMember{
			Name:       fmt.Sprintf("m%d", i),
			TypeString: typeString,
		})
	}
	return decl
}

func enumDecl(id int64, name string, values int) *types.Declaration {
	decl := &types.Declaration{ID: id, Kind: types.DeclarationEnum, Name: name}
	for i := 0; i < values; i++ {
		decl.Members = append(decl.Members, types.DeclarationMember{Name: fmt.Sprintf("V%d", i)})
	}
	return decl
}

func tableOf(decls ...*types.Declaration) types.SymbolTable {
	table := types.SymbolTable{}
	for _, d := range decls {
		table.Add(d)
	}
	return table
}

func TestResolve_Scalars(t *testing.T) {
	tests := []struct {
		typeString string
		category   types.Category
		slots      uint64
		bytes      uint64
	}{
		{"address", types.CategoryAddress, 1, 20},
		{"address payable", types.CategoryAddress, 1, 20},
		{"bool", types.CategoryBool, 1, 1},
		{"uint256", types.CategoryUint, 1, 32},
		{"uint8", types.CategoryUint, 1, 1},
		{"int128", types.CategoryInt, 1, 16},
		{"int8", types.CategoryInt, 1, 1},
		{"bytes4", types.CategoryBytesX, 1, 4},
		{"bytes32", types.CategoryBytesX, 1, 32},
		{"bytes1", types.CategoryBytesX, 1, 1},
		{"bytes", types.CategoryBytes, 1, 32},
		{"bytes storage ref", types.CategoryBytes, 1, 32},
		{"string", types.CategoryString, 1, 32},
		{"string memory", types.CategoryString, 1, 32},
		{"string calldata", types.CategoryString, 1, 32},
	}

	for _, tt := range tests {
		t.Run(tt.typeString, func(t *testing.T) {
			d, err := Resolve(tt.typeString, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.category, d.Category())
			assert.Equal(t, tt.slots, d.StorageSlots())
			assert.Equal(t, tt.bytes, d.StorageBytes())
		})
	}
}

func TestResolve_BareInteger(t *testing.T) {
	d, err := Resolve("uint", nil)
	require.NoError(t, err)
	integer, ok := d.(types.IntegerType)
	require.True(t, ok)
	assert.Equal(t, uint64(256), integer.BitWidth)
	assert.Equal(t, uint64(32), integer.StorageBytes())
	assert.True(t, integer.Implicit)
	assert.False(t, integer.Signed)

	d, err = Resolve("int", nil)
	require.NoError(t, err)
	assert.Equal(t, types.CategoryInt, d.Category())
	assert.True(t, d.(types.IntegerType).Implicit)

	d, err = Resolve("uint256", nil)
	require.NoError(t, err)
	assert.False(t, d.(types.IntegerType).Implicit)

	narrow := New(&layoutconfig.LayoutOptions{MaxDepth: 8, BareIntegerWidth: 64}, nil, nil)
	d, err = narrow.Resolve("uint", nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(8), d.StorageBytes())
}

func TestResolve_InvalidScalarWidths(t *testing.T) {
	for _, typeString := range []string{"uint7", "uint0", "uint264", "int1024", "bytes0", "bytes33", "u8int"} {
		t.Run(typeString, func(t *testing.T) {
			d, err := Resolve(typeString, nil)
			assert.Nil(t, d)
			assert.ErrorIs(t, err, ErrUnparsableType)
		})
	}
}

func TestResolve_ArrayPacking(t *testing.T) {
	tests := []struct {
		typeString string
		slots      uint64
	}{
		{"bool[3]", 1},
		{"uint128[3]", 2},
		{"uint256[3]", 3},
		{"uint256[]", 1},
		{"bool[]", 1},
		{"address[3]", 3},
		{"uint8[32]", 1},
		{"uint8[33]", 2},
		{"bytes4[3]", 1},
		{"uint256[2][3]", 6},
		{"uint8[2][3]", 3},
		{"uint256[][4]", 4},
		{"string[2]", 2},
		{"uint256[3] storage ref", 3},
		{"uint128[3] memory", 2},
	}

	for _, tt := range tests {
		t.Run(tt.typeString, func(t *testing.T) {
			d, err := Resolve(tt.typeString, nil)
			require.NoError(t, err)
			assert.Equal(t, types.CategoryArray, d.Category())
			assert.Equal(t, tt.slots, d.StorageSlots())
			assert.Equal(t, uint64(32), d.StorageBytes())
		})
	}
}

func TestResolve_ArrayShape(t *testing.T) {
	d, err := Resolve("uint128[3]", nil)
	require.NoError(t, err)
	array := d.(*types.ArrayType)
	assert.Equal(t, types.FixedSize(3), array.Size)
	assert.Equal(t, types.IntegerType{BitWidth: 128}, array.Element)

	d, err = Resolve("uint256[]", nil)
	require.NoError(t, err)
	assert.True(t, d.(*types.ArrayType).Size.Dynamic)

	d, err = Resolve("uint8[2][3]", nil)
	require.NoError(t, err)
	outer := d.(*types.ArrayType)
	assert.Equal(t, uint64(3), outer.Size.Length)
	inner := outer.Element.(*types.ArrayType)
	assert.Equal(t, uint64(2), inner.Size.Length)
}

func TestResolve_ArrayErrors(t *testing.T) {
	tests := []struct {
		typeString string
		kind       ErrorKind
	}{
		{"uint256[0]", KindUnparsableType},
		{"uint256[-1]", KindUnparsableType},
		{"uint256[x]", KindUnparsableType},
		{"[3]", KindUnparsableType},
		{"uint256[3", KindUnparsableType},
		{"uint256[99999999999999999999999]", KindUnparsableType},
		{"mapping(uint256 => uint256[])", KindUnparsableType},
		{"foo[3]", KindPropagatedChildFailure},
		{"uint7[2]", KindPropagatedChildFailure},
	}

	for _, tt := range tests {
		t.Run(tt.typeString, func(t *testing.T) {
			d, err := Resolve(tt.typeString, nil)
			assert.Nil(t, d)
			require.Error(t, err)
			assert.Equal(t, tt.kind, KindOf(err))
		})
	}
}

func TestResolve_ArrayChildFailureCause(t *testing.T) {
	_, err := Resolve("foo[3]", nil)

	var re *ResolveError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "foo[3]", re.TypeString)
	assert.Equal(t, KindUnrecognizedCategory, re.Root().Kind)
	assert.Equal(t, "foo", re.Root().TypeString)
	assert.ErrorIs(t, err, ErrPropagatedChildFailure)
	assert.ErrorIs(t, err, ErrUnrecognizedCategory)
}

func TestResolve_StructPacking(t *testing.T) {
	table := tableOf(
		structDecl(1, "Pair", "uint128", "uint128"),
		structDecl(2, "Triple", "uint128", "uint128", "uint128"),
		structDecl(3, "Mixed", "address", "bool", "uint8[3]", "string"),
		structDecl(4, "Outer", "struct Pair", "uint256"),
	)

	tests := []struct {
		typeString string
		slots      uint64
		members    int
	}{
		{"struct Pair", 1, 2},
		{"struct Triple", 2, 3},
		// 20 + 1 + 32 + 32
		{"struct Mixed storage ref", 3, 4},
		// 32 + 32
		{"struct Outer memory", 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.typeString, func(t *testing.T) {
			d, err := Resolve(tt.typeString, table)
			require.NoError(t, err)
			s, ok := d.(*types.StructType)
			require.True(t, ok)
			assert.Equal(t, tt.slots, s.StorageSlots())
			assert.Equal(t, uint64(32), s.StorageBytes())
			assert.Len(t, s.Members, tt.members)
		})
	}
}

func TestResolve_StructMembers(t *testing.T) {
	table := tableOf(
		enumDecl(1, "Side", 3),
		&types.Declaration{
			ID:            2,
			Kind:          types.DeclarationStruct,
			Name:          "Position",
			CanonicalName: "Vault.Position",
			Members: []types.DeclarationMember{
				{Name: "owner", TypeString: "address"},
				{Name: "side", TypeString: "enum Side"},
			},
		},
	)

	d, err := Resolve("struct Vault.Position storage ref", table)
	require.NoError(t, err)
	s := d.(*types.StructType)
	assert.Equal(t, "Position", s.Name)
	require.Len(t, s.Members, 2)
	assert.Equal(t, "owner", s.Members[0].Name)
	assert.Equal(t, types.AddressType{}, s.Members[0].Type)
	assert.Equal(t, &types.EnumType{Name: "Side", ValueCount: 3, Bytes: 1}, s.Members[1].Type)
	assert.Equal(t, uint64(1), s.StorageSlots())
}

func TestResolve_StructOfArraysAndArrayOfStructs(t *testing.T) {
	table := tableOf(
		structDecl(1, "Pair", "uint128", "uint128"),
		structDecl(2, "Holder", "struct Pair[2]", "bool[3]"),
	)

	d, err := Resolve("struct Pair[4]", table)
	require.NoError(t, err)
	// 结构体元素宽度为 32，按元素槽数相乘
	assert.Equal(t, uint64(4), d.StorageSlots())

	d, err = Resolve("struct Holder", table)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), d.StorageSlots())
}

func TestResolve_StructFailures(t *testing.T) {
	table := tableOf(
		structDecl(1, "Broken", "uint256", "mapping(address => uint256)"),
		structDecl(2, "Empty"),
		structDecl(3, "UsesMissing", "struct Missing"),
		enumDecl(4, "NotAStruct", 2),
	)

	tests := []struct {
		typeString string
		kind       ErrorKind
		sentinel   error
	}{
		{"struct Unknown", KindUnknownDeclaration, ErrUnknownDeclaration},
		{"struct NotAStruct", KindUnknownDeclaration, ErrUnknownDeclaration},
		{"struct Broken", KindPropagatedChildFailure, ErrUnrecognizedCategory},
		{"struct UsesMissing", KindPropagatedChildFailure, ErrUnknownDeclaration},
		{"struct Empty", KindEmptyDeclaration, ErrEmptyDeclaration},
		{"struct 9bad", KindUnparsableType, ErrUnparsableType},
		{"struct", KindUnparsableType, ErrUnparsableType},
	}

	for _, tt := range tests {
		t.Run(tt.typeString, func(t *testing.T) {
			d, err := Resolve(tt.typeString, table)
			assert.Nil(t, d)
			require.Error(t, err)
			assert.Equal(t, tt.kind, KindOf(err))
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestResolve_Enum(t *testing.T) {
	table := tableOf(
		enumDecl(1, "Three", 3),
		enumDecl(2, "Many", 300),
		enumDecl(3, "Single", 1),
		enumDecl(4, "Full", 256),
		enumDecl(5, "Over", 257),
		enumDecl(6, "None", 0),
	)

	tests := []struct {
		typeString string
		bytes      uint64
	}{
		{"enum Three", 1},
		{"enum Many", 2},
		{"enum Single", 1},
		{"enum Full", 1},
		{"enum Over", 2},
	}
	for _, tt := range tests {
		t.Run(tt.typeString, func(t *testing.T) {
			d, err := Resolve(tt.typeString, table)
			require.NoError(t, err)
			assert.Equal(t, types.CategoryEnum, d.Category())
			assert.Equal(t, tt.bytes, d.StorageBytes())
			assert.Equal(t, uint64(1), d.StorageSlots())
		})
	}

	_, err := Resolve("enum None", table)
	assert.ErrorIs(t, err, ErrEmptyDeclaration)

	_, err = Resolve("enum Missing", table)
	assert.ErrorIs(t, err, ErrUnknownDeclaration)

	unclamped := New(&layoutconfig.LayoutOptions{MaxDepth: 8, BareIntegerWidth: 256, ClampSingleEnum: false}, nil, nil)
	d, err := unclamped.Resolve("enum Single", table)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), d.StorageBytes())
}

func TestEnumByteWidth(t *testing.T) {
	assert.Equal(t, uint64(0), enumByteWidth(1))
	assert.Equal(t, uint64(1), enumByteWidth(2))
	assert.Equal(t, uint64(1), enumByteWidth(256))
	assert.Equal(t, uint64(2), enumByteWidth(257))
	assert.Equal(t, uint64(2), enumByteWidth(65536))
	assert.Equal(t, uint64(3), enumByteWidth(65537))
	assert.Equal(t, uint64(8), enumByteWidth(^uint64(0)))
}

func TestResolve_UnrecognizedCategory(t *testing.T) {
	for _, typeString := range []string{"mapping(address => uint256)", "function () external", "fixed128x18", "", "Foo"} {
		t.Run(typeString, func(t *testing.T) {
			d, err := Resolve(typeString, nil)
			assert.Nil(t, d)
			assert.Equal(t, KindUnrecognizedCategory, KindOf(err))
			assert.ErrorIs(t, err, ErrUnrecognizedCategory)
		})
	}
}

func TestResolve_DuplicateNamesLowestKeyWins(t *testing.T) {
	table := tableOf(
		structDecl(9, "Dup", "uint256", "uint256"),
		structDecl(3, "Dup", "bool"),
	)
	d, err := Resolve("struct Dup", table)
	require.NoError(t, err)
	assert.Len(t, d.(*types.StructType).Members, 1)
}

func TestResolve_DepthLimit(t *testing.T) {
	r := New(&layoutconfig.LayoutOptions{MaxDepth: 3, BareIntegerWidth: 256}, nil, nil)

	_, err := r.Resolve("uint8[1][1]", nil)
	require.NoError(t, err)

	d, err := r.Resolve("uint8[1][1][1]", nil)
	assert.Nil(t, d)
	assert.ErrorIs(t, err, ErrDepthLimitExceeded)

	deep := "uint256" + strings.Repeat("[1]", 200)
	_, err = Resolve(deep, nil)
	assert.ErrorIs(t, err, ErrDepthLimitExceeded)
}

func TestResolve_Cycles(t *testing.T) {
	table := tableOf(
		structDecl(1, "Self", "uint256", "struct Self"),
		structDecl(2, "A", "struct B"),
		structDecl(3, "B", "struct A[2]"),
		// 同一结构体出现在兄弟成员中不是循环
		structDecl(4, "Leaf", "bool"),
		structDecl(5, "Twice", "struct Leaf", "struct Leaf"),
	)

	for _, typeString := range []string{"struct Self", "struct A", "struct B[3]"} {
		t.Run(typeString, func(t *testing.T) {
			d, err := Resolve(typeString, table)
			assert.Nil(t, d)
			assert.ErrorIs(t, err, ErrCyclicDeclaration)
		})
	}

	d, err := Resolve("struct Twice", table)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), d.StorageSlots())
}

func TestResolve_HandBuiltTableWithoutIDs(t *testing.T) {
	inner := &types.Declaration{
		Kind: types.DeclarationStruct,
		Name: "Inner",
		Members: []types.DeclarationMember{
			{Name: "a", TypeString: "uint128"},
			{Name: "b", TypeString: "uint128"},
		},
	}
	outer := &types.Declaration{
		Kind: types.DeclarationStruct,
		Name: "Outer",
		Members: []types.DeclarationMember{
			{Name: "in", TypeString: "struct Inner storage ref"},
			{Name: "list", TypeString: "struct Inner storage ref[2]"},
		},
	}
	self := &types.Declaration{
		Kind:    types.DeclarationStruct,
		Name:    "Self",
		Members: []types.DeclarationMember{{Name: "next", TypeString: "struct Self"}},
	}
	// key 与 ID 无关，所有 ID 均为零值
	table := types.SymbolTable{10: outer, 20: inner, 30: self}

	t.Run("嵌套结构体", func(t *testing.T) {
		d, err := Resolve("struct Outer", table)
		require.NoError(t, err)
		s := d.(*types.StructType)
		require.Len(t, s.Members, 2)
		assert.Equal(t, uint64(1), s.Members[0].Type.StorageSlots())
		assert.Equal(t, uint64(2), s.Members[1].Type.StorageSlots())
		assert.Equal(t, uint64(2), d.StorageSlots())
	})

	t.Run("结构体数组", func(t *testing.T) {
		d, err := Resolve("struct Inner[3]", table)
		require.NoError(t, err)
		assert.Equal(t, uint64(3), d.StorageSlots())
	})

	t.Run("相同ID的不同声明", func(t *testing.T) {
		dup := types.SymbolTable{
			1: {ID: 7, Kind: types.DeclarationStruct, Name: "Outer",
				Members: []types.DeclarationMember{{Name: "in", TypeString: "struct Inner"}}},
			2: {ID: 7, Kind: types.DeclarationStruct, Name: "Inner",
				Members: []types.DeclarationMember{{Name: "x", TypeString: "bool"}}},
		}
		d, err := Resolve("struct Outer", dup)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), d.StorageSlots())
	})

	t.Run("自引用仍被识别", func(t *testing.T) {
		d, err := Resolve("struct Self", table)
		assert.Nil(t, d)
		assert.ErrorIs(t, err, ErrCyclicDeclaration)
	})
}

func TestResolve_ConcurrentIndependentTrees(t *testing.T) {
	table := tableOf(
		structDecl(1, "Pair", "uint128", "uint128"),
		structDecl(2, "Holder", "struct Pair[2]", "bool[3]", "enum Side"),
		enumDecl(3, "Side", 3),
	)

	const workers = 16
	results := make([]types.TypeDescriptor, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d, err := Resolve("struct Holder", table)
			assert.NoError(t, err)
			results[i] = d
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		assert.Equal(t, results[0], results[i])
		assert.NotSame(t, results[0], results[i])
		assert.NotSame(t,
			results[0].(*types.StructType).Members[0].Type,
			results[i].(*types.StructType).Members[0].Type)
	}
}

func TestResolveError_Format(t *testing.T) {
	_, err := Resolve("struct Outer", tableOf(structDecl(1, "Outer", "foo")))
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "PropagatedChildFailure")
	assert.Contains(t, msg, `"struct Outer"`)
	assert.Contains(t, msg, "UnrecognizedCategory")
	assert.Contains(t, msg, `"foo"`)
}

func TestResolve_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(nil, nil, NewMetrics(reg))

	_, err := r.Resolve("uint256[3]", nil)
	require.NoError(t, err)
	_, err = r.Resolve("mapping(a => b)", nil)
	require.Error(t, err)
	// 根分类在首次分类时记录，嵌套失败不影响标签
	_, err = r.Resolve("struct Missing[2]", nil)
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.metrics.resolutions.WithLabelValues("array", outcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.metrics.resolutions.WithLabelValues("unknown", outcomeFailure)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.metrics.resolutions.WithLabelValues("array", outcomeFailure)))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.metrics.resolutions.WithLabelValues("struct", outcomeFailure)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.metrics.failures.WithLabelValues(string(KindUnrecognizedCategory))))
}
