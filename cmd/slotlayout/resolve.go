package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	layoutconfig "github.com/weisyn/slotlayout/internal/config/layout"
	"github.com/weisyn/slotlayout/internal/core/layout"
	"github.com/weisyn/slotlayout/pkg/types"
)

// layoutFlags 解析相关标志
type layoutFlags struct {
	astPath          string
	maxDepth         int
	bareIntegerWidth int
	noClampEnum      bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.astPath, "ast", "", "solc AST / standard-JSON 输出 / 声明数组 JSON 文件")
	cmd.Flags().IntVar(&f.maxDepth, "max-depth", 0, "递归深度上限 (默认 64)")
	cmd.Flags().IntVar(&f.bareIntegerWidth, "bare-int-width", 0, "裸 uint/int 的位宽 (默认 256)")
	cmd.Flags().BoolVar(&f.noClampEnum, "no-clamp-enum", false, "单值枚举按 0 字节计")
}

// userConfig 仅包含命令行显式设置的字段
func (f *layoutFlags) userConfig(cmd *cobra.Command) *types.UserLayoutConfig {
	cfg := &types.UserLayoutConfig{}
	if cmd.Flags().Changed("max-depth") {
		cfg.MaxDepth = types.IntPtr(f.maxDepth)
	}
	if cmd.Flags().Changed("bare-int-width") {
		cfg.BareIntegerWidth = types.IntPtr(f.bareIntegerWidth)
	}
	if f.noClampEnum {
		cfg.ClampSingleEnum = types.BoolPtr(false)
	}
	if f.astPath != "" {
		cfg.ASTPath = types.StringPtr(f.astPath)
	}
	return cfg
}

func newResolveCmd(global *GlobalFlags) *cobra.Command {
	flags := &layoutFlags{}

	cmd := &cobra.Command{
		Use:   "resolve <type>",
		Short: "计算类型的存储布局",
		Long: `计算类型字符串的存储布局

示例:
  slotlayout resolve "uint128[3]"
  slotlayout resolve "struct Vault.Position[2]" --ast build/out.json -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := newFormatter(cmd, global)
			if err != nil {
				return err
			}

			userConfig := flags.userConfig(cmd)
			if userConfig.MaxDepth != nil && *userConfig.MaxDepth < 1 {
				return fmt.Errorf("--max-depth 必须 ≥ 1")
			}
			if w := userConfig.BareIntegerWidth; w != nil && (*w < 8 || *w > 256 || *w%8 != 0) {
				return fmt.Errorf("--bare-int-width 必须是 8..256 之间 8 的倍数")
			}
			options := layoutconfig.New(userConfig).GetOptions()

			catalog, err := layout.NewCatalog(options.ASTPath)
			if err != nil {
				return err
			}

			typeString := strings.TrimSpace(args[0])
			desc, err := layout.New(options, nil, nil).Resolve(typeString, catalog.Table())
			if err != nil {
				return err
			}

			if !formatter.IsTable() {
				return formatter.PrintJSON(map[string]interface{}{
					"typeString": typeString,
					"descriptor": layout.ToJSON(desc),
				})
			}
			return formatter.PrintTable(rowsTable(layout.Describe(typeString, desc)))
		},
	}
	flags.register(cmd)
	return cmd
}

// rowsTable 将布局行转为表格数据
func rowsTable(rows []layout.Row) [][]string {
	data := [][]string{{"Path", "Category", "Slots", "Bytes", "Note"}}
	for _, row := range rows {
		bytes := strconv.FormatUint(row.Bytes, 10)
		if row.Placeholder {
			bytes += "*"
		}
		data = append(data, []string{
			row.Path,
			string(row.Category),
			strconv.FormatUint(row.Slots, 10),
			bytes,
			row.Note,
		})
	}
	return data
}
