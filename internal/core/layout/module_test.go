package layout

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/weisyn/slotlayout/internal/config"
	cfgiface "github.com/weisyn/slotlayout/pkg/interfaces/config"
	layoutiface "github.com/weisyn/slotlayout/pkg/interfaces/layout"
	"github.com/weisyn/slotlayout/pkg/types"
)

func TestModuleWiring(t *testing.T) {
	reg := prometheus.NewRegistry()
	appConfig := &types.AppConfig{
		Layout: &types.UserLayoutConfig{
			ASTPath: types.StringPtr("solcast/testdata/vault.ast.json"),
		},
	}

	var (
		resolver layoutiface.Resolver
		catalog  *Catalog
	)
	app := fxtest.New(t,
		fx.Provide(func() cfgiface.AppOptions { return config.NewAppOptions(appConfig) }),
		fx.Provide(func() prometheus.Registerer { return reg }),
		config.Module(),
		Module(),
		fx.Populate(&resolver, &catalog),
	)
	app.RequireStart()
	defer app.RequireStop()

	require.NotNil(t, resolver)
	require.NotEmpty(t, catalog.Table())

	d, err := resolver.Resolve("enum Side", catalog.Table())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), d.StorageBytes())

	assert.Equal(t, 1, testutil.CollectAndCount(reg, "slotlayout_resolver_resolutions_total"))
}

func TestModuleMissingAST(t *testing.T) {
	appConfig := &types.AppConfig{
		Layout: &types.UserLayoutConfig{
			ASTPath: types.StringPtr("solcast/testdata/missing.json"),
		},
	}

	app := fx.New(
		fx.NopLogger,
		fx.Provide(func() cfgiface.AppOptions { return config.NewAppOptions(appConfig) }),
		fx.Provide(func() prometheus.Registerer { return prometheus.NewRegistry() }),
		config.Module(),
		Module(),
		fx.Invoke(func(*Catalog) {}),
	)
	assert.Error(t, app.Err())
}
