package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// GlobalFlags 全局标志
type GlobalFlags struct {
	OutputFormat string // 输出格式
	Silent       bool   // 静默模式
}

// newRootCmd 构建命令树
func newRootCmd() *cobra.Command {
	flags := &GlobalFlags{}

	rootCmd := &cobra.Command{
		Use:   "slotlayout",
		Short: "Solidity 存储布局解析工具",
		Long: `slotlayout - Solidity 存储布局解析与模拟链头

根据类型字符串和 solc AST 中的结构体/枚举声明，计算变量占用的存储槽数与字节宽度；
serve 子命令同时提供以太坊兼容的 JSON-RPC 模拟链头。`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flags.OutputFormat, "output", "o", string(FormatTable), "输出格式: table|json|pretty")
	rootCmd.PersistentFlags().BoolVar(&flags.Silent, "silent", false, "静默模式 (不输出结果)")

	rootCmd.AddCommand(newResolveCmd(flags))
	rootCmd.AddCommand(newDeclarationsCmd(flags))
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// newFormatter 根据全局标志创建输出格式化器
func newFormatter(cmd *cobra.Command, flags *GlobalFlags) (*Formatter, error) {
	format := Format(flags.OutputFormat)
	switch format {
	case FormatTable, FormatJSON, FormatPretty:
	default:
		return nil, fmt.Errorf("不支持的输出格式: %s", flags.OutputFormat)
	}
	formatter := NewFormatter(format, cmd.OutOrStdout())
	formatter.SetSilent(flags.Silent)
	return formatter, nil
}

// Execute 执行根命令
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}
