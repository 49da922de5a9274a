package solcast

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weisyn/slotlayout/pkg/types"
)

func TestLoadFile_SourceUnit(t *testing.T) {
	table, err := LoadFile("testdata/vault.ast.json")
	require.NoError(t, err)
	require.Len(t, table, 2)

	side := table[5]
	require.NotNil(t, side)
	assert.Equal(t, types.DeclarationEnum, side.Kind)
	assert.Equal(t, "Side", side.Name)
	assert.Len(t, side.Members, 3)

	position := table[14]
	require.NotNil(t, position)
	assert.Equal(t, types.DeclarationStruct, position.Kind)
	assert.Equal(t, "Vault.Position", position.CanonicalName)
	assert.Equal(t, []types.DeclarationMember{
		{Name: "owner", TypeString: "address"},
		{Name: "side", TypeString: "enum Side"},
		{Name: "size", TypeString: "uint128"},
		{Name: "tags", TypeString: "bytes4[3]"},
	}, position.Members)
}

func TestParse_StandardJSON(t *testing.T) {
	input := `{
		"sources": {
			"b.sol": {"id": 1, "ast": {"nodeType": "SourceUnit", "nodes": [
				{"nodeType": "EnumDefinition", "id": 20, "name": "Color", "members": [
					{"nodeType": "EnumValue", "name": "Red"}
				]}
			]}},
			"a.sol": {"id": 0, "ast": {"nodeType": "SourceUnit", "nodes": [
				{"nodeType": "StructDefinition", "id": 10, "name": "Pair", "members": [
					{"nodeType": "VariableDeclaration", "name": "a", "typeDescriptions": {"typeString": "uint128"}},
					{"nodeType": "VariableDeclaration", "name": "b", "typeDescriptions": {"typeString": "uint128"}}
				]}
			]}}
		}
	}`

	table, err := Parse([]byte(input))
	require.NoError(t, err)
	require.Len(t, table, 2)
	assert.Equal(t, "Pair", table[10].Name)
	assert.Equal(t, "Color", table[20].Name)
}

func TestParse_DeclarationList(t *testing.T) {
	input := `[
		{"kind": "StructDefinition", "name": "A", "members": [{"name": "x", "typeString": "bool"}]},
		{"id": 1, "kind": "EnumDefinition", "name": "E", "members": [{"name": "One"}, {"name": "Two"}]},
		{"kind": "EnumDefinition", "name": "F", "members": [{"name": "Only"}]}
	]`

	table, err := Load(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, table, 3)

	assert.Equal(t, "E", table[1].Name)
	assert.Equal(t, "A", table[2].Name)
	assert.Equal(t, "F", table[3].Name)
	assert.Equal(t, int64(2), table[2].ID)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"空输入", "   "},
		{"非法JSON", "{not json"},
		{"无法识别的对象", `{"foo": 1}`},
		{"非法声明类型", `[{"kind": "FunctionDefinition", "name": "f"}]`},
		{"缺少名称", `[{"kind": "StructDefinition"}]`},
		{"重复ID", `[{"id": 3, "kind": "EnumDefinition", "name": "A"}, {"id": 3, "kind": "EnumDefinition", "name": "B"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			assert.Error(t, err)
		})
	}

	_, err := Parse([]byte(`{"foo": 1}`))
	assert.ErrorIs(t, err, ErrUnrecognizedInput)

	_, err = LoadFile("testdata/missing.json")
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	table, err := LoadFile("testdata/vault.ast.json")
	require.NoError(t, err)

	entries := Summarize(table)
	require.Len(t, entries, 2)
	assert.Equal(t, Entry{ID: 5, Kind: "enum", Name: "Side", CanonicalName: "Side", Members: 3}, entries[0])
	assert.Equal(t, Entry{ID: 14, Kind: "struct", Name: "Position", CanonicalName: "Vault.Position", Members: 4}, entries[1])
}
