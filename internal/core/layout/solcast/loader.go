// Package solcast 从 solc 编译输出构建声明表
//
// 支持三种输入：
//   - 单个 compact-JSON AST（nodeType 为 SourceUnit）
//   - standard-JSON 输出（sources.<file>.ast）
//   - 直接序列化的 []types.Declaration
package solcast

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/weisyn/slotlayout/pkg/types"
)

// 出现在 members 中的子节点类型
const (
	nodeVariableDeclaration = "VariableDeclaration"
	nodeEnumValue           = "EnumValue"
)

// ErrUnrecognizedInput 输入既不是 AST 也不是声明数组
var ErrUnrecognizedInput = errors.New("unrecognized AST input")

type typeDescriptions struct {
	TypeString string `json:"typeString"`
}

type astNode struct {
	ID               int64             `json:"id"`
	NodeType         string            `json:"nodeType"`
	Name             string            `json:"name"`
	CanonicalName    string            `json:"canonicalName"`
	Nodes            []astNode         `json:"nodes"`
	Members          []astNode         `json:"members"`
	TypeDescriptions *typeDescriptions `json:"typeDescriptions"`
}

type standardOutput struct {
	Sources map[string]struct {
		AST *astNode `json:"ast"`
	} `json:"sources"`
	NodeType string `json:"nodeType"`
}

// LoadFile 读取并解析文件
func LoadFile(path string) (types.SymbolTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取 AST 文件失败 %s: %w", path, err)
	}
	table, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("解析 AST 文件失败 %s: %w", path, err)
	}
	return table, nil
}

// Load 从 reader 解析
func Load(r io.Reader) (types.SymbolTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse 解析 JSON 数据为声明表
func Parse(data []byte) (types.SymbolTable, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrUnrecognizedInput
	}

	if trimmed[0] == '[' {
		return parseDeclarations(trimmed)
	}

	var out standardOutput
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	table := make(types.SymbolTable)
	switch {
	case len(out.Sources) > 0:
		names := make([]string, 0, len(out.Sources))
		for name := range out.Sources {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if ast := out.Sources[name].AST; ast != nil {
				walk(table, ast)
			}
		}
	case out.NodeType != "":
		var root astNode
		if err := json.Unmarshal(trimmed, &root); err != nil {
			return nil, fmt.Errorf("invalid AST: %w", err)
		}
		walk(table, &root)
	default:
		return nil, ErrUnrecognizedInput
	}
	return table, nil
}

// walk 深度优先收集结构体与枚举定义
func walk(table types.SymbolTable, node *astNode) {
	switch types.DeclarationKind(node.NodeType) {
	case types.DeclarationStruct:
		decl := newDeclaration(node)
		for _, m := range node.Members {
			if m.NodeType != nodeVariableDeclaration || m.TypeDescriptions == nil {
				continue
			}
			decl.Members = append(decl.Members, types.DeclarationMember{
				Name:       m.Name,
				TypeString: m.TypeDescriptions.TypeString,
			})
		}
		table.Add(decl)
	case types.DeclarationEnum:
		decl := newDeclaration(node)
		for _, m := range node.Members {
			if m.NodeType == nodeEnumValue {
				decl.Members = append(decl.Members, types.DeclarationMember{Name: m.Name})
			}
		}
		table.Add(decl)
	}

	for i := range node.Nodes {
		walk(table, &node.Nodes[i])
	}
}

func newDeclaration(node *astNode) *types.Declaration {
	return &types.Declaration{
		ID:            node.ID,
		Kind:          types.DeclarationKind(node.NodeType),
		Name:          node.Name,
		CanonicalName: node.CanonicalName,
		Members:       []types.DeclarationMember{},
	}
}

// parseDeclarations 解析声明数组；缺少 id 的声明按顺序分配未占用的正整数 key
func parseDeclarations(data []byte) (types.SymbolTable, error) {
	var decls []*types.Declaration
	if err := json.Unmarshal(data, &decls); err != nil {
		return nil, fmt.Errorf("invalid declaration list: %w", err)
	}

	table := make(types.SymbolTable, len(decls))
	var pending []*types.Declaration
	for i, decl := range decls {
		if decl == nil {
			continue
		}
		if decl.Kind != types.DeclarationStruct && decl.Kind != types.DeclarationEnum {
			return nil, fmt.Errorf("declaration %d: unsupported kind %q", i, decl.Kind)
		}
		if decl.Name == "" {
			return nil, fmt.Errorf("declaration %d: missing name", i)
		}
		if decl.ID == 0 {
			pending = append(pending, decl)
			continue
		}
		if _, exists := table[decl.ID]; exists {
			return nil, fmt.Errorf("declaration %d: duplicate id %d", i, decl.ID)
		}
		table.Add(decl)
	}

	next := int64(1)
	for _, decl := range pending {
		for {
			if _, taken := table[next]; !taken {
				break
			}
			next++
		}
		decl.ID = next
		table.Add(decl)
	}
	return table, nil
}

// Entry 声明摘要
type Entry struct {
	ID            int64  `json:"id"`
	Kind          string `json:"kind"`
	Name          string `json:"name"`
	CanonicalName string `json:"canonicalName,omitempty"`
	Members       int    `json:"members"`
}

// Summarize 按 key 升序列出声明表内容
func Summarize(table types.SymbolTable) []Entry {
	entries := make([]Entry, 0, len(table))
	for _, key := range table.SortedKeys() {
		decl := table[key]
		if decl == nil {
			continue
		}
		kind := "struct"
		if decl.Kind == types.DeclarationEnum {
			kind = "enum"
		}
		entries = append(entries, Entry{
			ID:            key,
			Kind:          kind,
			Name:          decl.Name,
			CanonicalName: decl.CanonicalName,
			Members:       len(decl.Members),
		})
	}
	return entries
}
