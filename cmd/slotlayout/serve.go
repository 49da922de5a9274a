package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/weisyn/slotlayout/configs"
	"github.com/weisyn/slotlayout/internal/app"
	apiconfig "github.com/weisyn/slotlayout/internal/config/api"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		port       int
		coinbase   string
		astPath    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "启动 JSON-RPC 模拟链头与布局查询服务",
		Long: `启动 HTTP 服务

JSON-RPC 方法:
  eth_getBlockByNumber eth_gasPrice eth_coinbase eth_blockNumber eth_chainId
  dev_setCoinbase dev_setBlockNumber evm_mine
  layout_resolveType layout_listDeclarations`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			options := []app.Option{
				app.WithConfigFile(configPath),
				app.WithEmbeddedConfig(configs.GetDevelopmentConfig()),
			}
			if cmd.Flags().Changed("port") {
				options = append(options, app.WithHTTPPort(port))
			}
			if coinbase != "" {
				options = append(options, app.WithCoinbase(coinbase))
			}
			if astPath != "" {
				options = append(options, app.WithASTPath(astPath))
			}

			application, err := app.Start(options...)
			if err != nil {
				return err
			}

			httpOptions := apiconfig.New(application.Config().API).GetOptions().HTTP
			if httpOptions.Enabled {
				pterm.Success.Printfln("服务已启动: http://%s:%d", httpOptions.Host, httpOptions.Port)
			} else {
				pterm.Warning.Println("HTTP 服务在配置中被禁用")
			}
			pterm.Info.Println("按 Ctrl+C 停止")

			if err := application.Wait(); err != nil {
				return fmt.Errorf("停止服务: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "配置文件路径 (也可通过 "+app.ConfigPathEnv+" 指定)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP 监听端口 (覆盖配置文件)")
	cmd.Flags().StringVar(&coinbase, "coinbase", "", "初始 coinbase 地址")
	cmd.Flags().StringVar(&astPath, "ast", "", "启动时加载的声明文件")
	return cmd
}
