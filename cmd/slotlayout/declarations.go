package main

import (
	"errors"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/weisyn/slotlayout/internal/core/layout"
)

func newDeclarationsCmd(global *GlobalFlags) *cobra.Command {
	var astPath string

	cmd := &cobra.Command{
		Use:   "declarations",
		Short: "列出 AST 中的结构体与枚举",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := newFormatter(cmd, global)
			if err != nil {
				return err
			}
			if astPath == "" {
				return errors.New("需要 --ast 指定声明文件")
			}

			catalog, err := layout.NewCatalog(astPath)
			if err != nil {
				return err
			}
			entries := catalog.Entries()

			if !formatter.IsTable() {
				return formatter.PrintJSON(entries)
			}
			data := [][]string{{"ID", "Kind", "Name", "Canonical", "Members"}}
			for _, e := range entries {
				data = append(data, []string{
					strconv.FormatInt(e.ID, 10),
					e.Kind,
					e.Name,
					e.CanonicalName,
					strconv.Itoa(e.Members),
				})
			}
			return formatter.PrintTable(data)
		},
	}
	cmd.Flags().StringVar(&astPath, "ast", "", "solc AST / standard-JSON 输出 / 声明数组 JSON 文件")
	return cmd
}
