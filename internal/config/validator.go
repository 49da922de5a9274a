package config

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	logconfig "github.com/weisyn/slotlayout/internal/config/log"
	"github.com/weisyn/slotlayout/pkg/types"
)

// ValidationError 配置验证错误
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("配置验证失败 [%s]: %s", e.Field, e.Message)
}

// Validate 校验用户显式设置的配置项
// 未设置的字段使用默认值，不在这里校验
func Validate(appConfig *types.AppConfig) error {
	if appConfig == nil {
		return nil
	}

	var errs []error

	if l := appConfig.Log; l != nil && l.Level != nil && !logconfig.ValidLevel(*l.Level) {
		errs = append(errs, &ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("无法识别的日志级别: %q", *l.Level),
		})
	}

	if ch := appConfig.ChainHead; ch != nil {
		if ch.Coinbase != nil && !common.IsHexAddress(*ch.Coinbase) {
			errs = append(errs, &ValidationError{
				Field:   "chain_head.coinbase",
				Message: fmt.Sprintf("不是合法的 20 字节十六进制地址: %q", *ch.Coinbase),
			})
		}
		if ch.GasPrice != nil && *ch.GasPrice == 0 {
			errs = append(errs, &ValidationError{
				Field:   "chain_head.gas_price",
				Message: "gas 价格必须大于 0",
			})
		}
	}

	if l := appConfig.Layout; l != nil {
		if l.MaxDepth != nil && *l.MaxDepth < 1 {
			errs = append(errs, &ValidationError{
				Field:   "layout.max_depth",
				Message: "递归深度上限必须 ≥ 1",
			})
		}
		if l.BareIntegerWidth != nil {
			bits := *l.BareIntegerWidth
			if bits < 8 || bits > 256 || bits%8 != 0 {
				errs = append(errs, &ValidationError{
					Field:   "layout.bare_integer_width",
					Message: fmt.Sprintf("位宽必须是 8..256 之间 8 的倍数，实际为 %d", bits),
				})
			}
		}
	}

	if a := appConfig.API; a != nil {
		if a.HTTPPort != nil && (*a.HTTPPort < 0 || *a.HTTPPort > 65535) {
			errs = append(errs, &ValidationError{
				Field:   "api.http_port",
				Message: fmt.Sprintf("端口超出范围: %d", *a.HTTPPort),
			})
		}
		if a.RateLimitRPS != nil && *a.RateLimitRPS < 0 {
			errs = append(errs, &ValidationError{
				Field:   "api.rate_limit_rps",
				Message: "限流速率不能为负数",
			})
		}
	}

	return errors.Join(errs...)
}
