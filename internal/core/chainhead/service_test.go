package chainhead

import (
	"context"
	"encoding/json"
	"math/big"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	chainheadconfig "github.com/weisyn/slotlayout/internal/config/chainhead"
	"github.com/weisyn/slotlayout/internal/core/infrastructure/event"
	"github.com/weisyn/slotlayout/pkg/interfaces/chainhead"
	"github.com/weisyn/slotlayout/pkg/types"
)

var testCoinbase = common.HexToAddress("0x00000000000000000000000000000000000000c0")

func newTestService(t *testing.T, bus *event.EventBus) *Service {
	t.Helper()
	cfg, err := chainheadconfig.New(&types.UserChainHeadConfig{
		Coinbase:    types.StringPtr(testCoinbase.Hex()),
		BlockNumber: types.UInt64Ptr(5),
	})
	require.NoError(t, err)
	if bus == nil {
		return New(cfg.GetOptions(), nil, nil)
	}
	return New(cfg.GetOptions(), bus, nil)
}

func TestService_Reads(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, nil)

	price, err := svc.GasPrice(ctx)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1), price)

	// 返回值是副本
	price.SetInt64(99)
	price, _ = svc.GasPrice(ctx)
	assert.Equal(t, int64(1), price.Int64())

	coinbase, err := svc.Coinbase(ctx)
	require.NoError(t, err)
	assert.Equal(t, testCoinbase, coinbase)

	number, err := svc.BlockNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), number)

	chainID, err := svc.ChainID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1337), chainID.Int64())
}

func TestService_GetBlockByNumber(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, nil)

	block, err := svc.GetBlockByNumber(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), uint64(block.Number))
	assert.Equal(t, testCoinbase, block.Miner)
	assert.Equal(t, ethtypes.EmptyUncleHash, block.Sha3Uncles)
	assert.Equal(t, ethtypes.EmptyRootHash, block.StateRoot)
	assert.Equal(t, ethtypes.EmptyTxsHash, block.TransactionsRoot)
	assert.Equal(t, ethtypes.EmptyReceiptsHash, block.ReceiptsRoot)
	assert.Empty(t, block.Transactions)
	assert.Empty(t, block.Uncles)
	assert.Equal(t, int64(1), block.Difficulty.ToInt().Int64())
	assert.Equal(t, uint64(0x3e8), uint64(block.Size))

	again, err := svc.GetBlockByNumber(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, block, again)
	assert.NotSame(t, block, again)

	parent, err := svc.GetBlockByNumber(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, parent.Hash, block.ParentHash)
	assert.NotEqual(t, parent.Hash, block.Hash)

	genesis, err := svc.GetBlockByNumber(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, common.Hash{}, genesis.ParentHash)

	_, err = svc.GetBlockByNumber(ctx, 6)
	assert.ErrorIs(t, err, chainhead.ErrBlockNotFound)
}

func TestService_BlockJSON(t *testing.T) {
	svc := newTestService(t, nil)
	block, err := svc.GetBlockByNumber(context.Background(), 1)
	require.NoError(t, err)

	data, err := json.Marshal(block)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "0x1", out["number"])
	assert.Equal(t, "0x1", out["difficulty"])
	assert.Equal(t, "0x0000000000000000", out["nonce"])
	assert.Equal(t, "0x", out["extraData"])
	assert.Equal(t, []interface{}{}, out["transactions"])
	assert.Equal(t, []interface{}{}, out["uncles"])
	assert.Equal(t, "0x00000000000000000000000000000000000000c0", out["miner"])
}

func TestService_Mutations(t *testing.T) {
	ctx := context.Background()
	bus := event.New(nil)

	var advanced [][2]uint64
	var coinbases []common.Address
	require.NoError(t, bus.Subscribe(chainhead.EventBlockAdvanced, func(prev, next uint64) {
		advanced = append(advanced, [2]uint64{prev, next})
	}))
	require.NoError(t, bus.Subscribe(chainhead.EventCoinbaseChanged, func(prev, next common.Address) {
		coinbases = append(coinbases, next)
	}))

	svc := newTestService(t, bus)

	t.Run("出块", func(t *testing.T) {
		n, err := svc.Mine(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(6), n)

		_, err = svc.GetBlockByNumber(ctx, 6)
		assert.NoError(t, err)
	})

	t.Run("区块计数只增不减", func(t *testing.T) {
		require.NoError(t, svc.SetBlockNumber(ctx, 10))
		require.NoError(t, svc.SetBlockNumber(ctx, 10))
		assert.ErrorIs(t, svc.SetBlockNumber(ctx, 9), chainhead.ErrBlockNumberDecrease)

		n, _ := svc.BlockNumber(ctx)
		assert.Equal(t, uint64(10), n)
	})

	t.Run("coinbase", func(t *testing.T) {
		next := common.HexToAddress("0x1111111111111111111111111111111111111111")
		require.NoError(t, svc.SetCoinbase(ctx, next))
		require.NoError(t, svc.SetCoinbase(ctx, next))

		got, _ := svc.Coinbase(ctx)
		assert.Equal(t, next, got)

		block, err := svc.GetBlockByNumber(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, next, block.Miner)
	})

	assert.Equal(t, [][2]uint64{{5, 6}, {6, 10}}, advanced)
	assert.Len(t, coinbases, 1)
}

func TestService_CanceledContext(t *testing.T) {
	svc := newTestService(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Mine(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = svc.GetBlockByNumber(ctx, 0)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, svc.SetBlockNumber(ctx, 100), context.Canceled)

	n, _ := svc.BlockNumber(context.Background())
	assert.Equal(t, uint64(5), n)
}

func TestService_ConcurrentMine(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Mine(ctx)
			_, _ = svc.GetBlockByNumber(ctx, 3)
		}()
	}
	wg.Wait()

	n, _ := svc.BlockNumber(ctx)
	assert.Equal(t, uint64(55), n)
}

func TestNew_Defaults(t *testing.T) {
	svc := New(nil, nil, nil)
	coinbase, _ := svc.Coinbase(context.Background())
	assert.Equal(t, common.Address{}, coinbase)
}
