package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/slotlayout/pkg/types"
)

// TestGetEnvironment 测试 GetEnvironment() 方法
func TestGetEnvironment(t *testing.T) {
	tests := []struct {
		name string
		env  *string
		want string
	}{
		{"显式配置 dev", types.StringPtr("dev"), "dev"},
		{"显式配置 test", types.StringPtr("test"), "test"},
		{"大小写与空白", types.StringPtr("  PROD "), "prod"},
		{"未配置时默认为 dev", nil, "dev"},
		{"无效值默认为 dev", types.StringPtr("staging"), "dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := NewProvider(&types.AppConfig{Environment: tt.env})
			assert.Equal(t, tt.want, provider.GetEnvironment())
		})
	}
}

// TestProviderDefaults 未设置任何字段时使用默认值
func TestProviderDefaults(t *testing.T) {
	provider := NewProvider(nil)

	layout := provider.GetLayout()
	assert.Equal(t, 64, layout.MaxDepth)
	assert.Equal(t, 256, layout.BareIntegerWidth)
	assert.True(t, layout.ClampSingleEnum)
	assert.Empty(t, layout.ASTPath)

	head := provider.GetChainHead()
	assert.Equal(t, common.Address{}, head.Coinbase)
	assert.Equal(t, uint64(0), head.BlockNumber)
	assert.Equal(t, uint64(1), head.GasPrice)
	assert.Equal(t, uint64(1337), head.ChainID)

	api := provider.GetAPI()
	assert.True(t, api.HTTP.Enabled)
	assert.Equal(t, "127.0.0.1", api.HTTP.Host)
	assert.Equal(t, 8545, api.HTTP.Port)
	assert.True(t, api.HTTP.EnableJSONRPC)
	assert.Equal(t, 16, api.LayoutCache.HardMaxCacheSizeMB)

	log := provider.GetLog()
	assert.Equal(t, "info", log.Level)
	assert.Equal(t, "stderr", log.FilePath)
}

// TestProviderOverrides 显式设置的值覆盖默认值，包括零值
func TestProviderOverrides(t *testing.T) {
	provider := NewProvider(&types.AppConfig{
		Layout: &types.UserLayoutConfig{
			MaxDepth:         types.IntPtr(8),
			BareIntegerWidth: types.IntPtr(128),
			ClampSingleEnum:  types.BoolPtr(false),
			ASTPath:          types.StringPtr("contracts.ast.json"),
		},
		ChainHead: &types.UserChainHeadConfig{
			Coinbase:    types.StringPtr("0x00000000000000000000000000000000000000aa"),
			BlockNumber: types.UInt64Ptr(42),
			ChainID:     types.UInt64Ptr(31337),
		},
		API: &types.UserAPIConfig{
			HTTPPort:          types.IntPtr(0),
			HTTPEnableMetrics: types.BoolPtr(false),
			LayoutCacheMB:     types.IntPtr(0),
		},
	})

	layout := provider.GetLayout()
	assert.Equal(t, 8, layout.MaxDepth)
	assert.Equal(t, 128, layout.BareIntegerWidth)
	assert.False(t, layout.ClampSingleEnum)
	assert.Equal(t, "contracts.ast.json", layout.ASTPath)

	head := provider.GetChainHead()
	assert.Equal(t, common.HexToAddress("0xaa"), head.Coinbase)
	assert.Equal(t, uint64(42), head.BlockNumber)
	assert.Equal(t, uint64(31337), head.ChainID)

	api := provider.GetAPI()
	assert.Equal(t, 0, api.HTTP.Port)
	assert.False(t, api.HTTP.EnableMetrics)
	assert.Equal(t, 0, api.LayoutCache.HardMaxCacheSizeMB)
}

// TestProviderIgnoresInvalidLayoutValues 未经校验的非法值保持默认
func TestProviderIgnoresInvalidLayoutValues(t *testing.T) {
	provider := NewProvider(&types.AppConfig{
		Layout: &types.UserLayoutConfig{
			MaxDepth:         types.IntPtr(0),
			BareIntegerWidth: types.IntPtr(12),
		},
		ChainHead: &types.UserChainHeadConfig{
			Coinbase: types.StringPtr("not-an-address"),
		},
	})

	assert.Equal(t, 64, provider.GetLayout().MaxDepth)
	assert.Equal(t, 256, provider.GetLayout().BareIntegerWidth)
	assert.Equal(t, common.Address{}, provider.GetChainHead().Coinbase)
}

// TestValidate 校验显式设置的非法值
func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(nil))
	assert.NoError(t, Validate(&types.AppConfig{}))

	err := Validate(&types.AppConfig{
		Log: &types.UserLogConfig{Level: types.StringPtr("verbose")},
		ChainHead: &types.UserChainHeadConfig{
			Coinbase: types.StringPtr("0x1234"),
			GasPrice: types.UInt64Ptr(0),
		},
		Layout: &types.UserLayoutConfig{
			MaxDepth:         types.IntPtr(0),
			BareIntegerWidth: types.IntPtr(264),
		},
		API: &types.UserAPIConfig{
			HTTPPort: types.IntPtr(70000),
		},
	})
	require.Error(t, err)

	for _, field := range []string{
		"log.level",
		"chain_head.coinbase",
		"chain_head.gas_price",
		"layout.max_depth",
		"layout.bare_integer_width",
		"api.http_port",
	} {
		assert.Contains(t, err.Error(), field)
	}

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

// TestLoadAppConfig 从文件加载配置
func TestLoadAppConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("空路径返回空配置", func(t *testing.T) {
		cfg, err := LoadAppConfig("")
		require.NoError(t, err)
		assert.NotNil(t, cfg)
	})

	t.Run("合法文件", func(t *testing.T) {
		path := filepath.Join(dir, "ok.json")
		require.NoError(t, os.WriteFile(path, []byte(`{
			"environment": "test",
			"layout": {"max_depth": 16},
			"chain_head": {"coinbase": "0x00000000000000000000000000000000000000bb"}
		}`), 0o644))

		cfg, err := LoadAppConfig(path)
		require.NoError(t, err)
		provider := NewProvider(cfg)
		assert.Equal(t, "test", provider.GetEnvironment())
		assert.Equal(t, 16, provider.GetLayout().MaxDepth)
		assert.Equal(t, common.HexToAddress("0xbb"), provider.GetChainHead().Coinbase)
	})

	t.Run("文件不存在", func(t *testing.T) {
		_, err := LoadAppConfig(filepath.Join(dir, "missing.json"))
		assert.Error(t, err)
	})

	t.Run("JSON格式错误", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"layout":`), 0o644))
		_, err := LoadAppConfig(path)
		assert.Error(t, err)
	})

	t.Run("校验失败", func(t *testing.T) {
		path := filepath.Join(dir, "invalid.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"layout": {"bare_integer_width": 7}}`), 0o644))
		_, err := LoadAppConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "layout.bare_integer_width")
	})
}

// TestProvideConfigServices 模块构造时执行校验
func TestProvideConfigServices(t *testing.T) {
	out, err := ProvideConfigServices(ConfigParams{})
	require.NoError(t, err)
	assert.Equal(t, "dev", out.Provider.GetEnvironment())

	_, err = ProvideConfigServices(ConfigParams{
		AppOptions: NewAppOptions(&types.AppConfig{
			ChainHead: &types.UserChainHeadConfig{Coinbase: types.StringPtr("zz")},
		}),
	})
	assert.Error(t, err)
}
