// Package metrics 提供进程级 Prometheus 注册表
//
// 所有模块的指标注册到同一个注册表，由 HTTP 层通过 /metrics 暴露。
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
)

// ModuleOutput 指标模块输出
type ModuleOutput struct {
	fx.Out

	Registry   *prometheus.Registry
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// Module 返回 metrics 模块
func Module() fx.Option {
	return fx.Module("metrics",
		fx.Provide(ProvideServices),
	)
}

// ProvideServices 创建注册表并注册 Go 运行时与进程采集器
func ProvideServices() ModuleOutput {
	reg := NewRegistry()
	return ModuleOutput{
		Registry:   reg,
		Registerer: reg,
		Gatherer:   reg,
	}
}

// NewRegistry 创建带运行时采集器的注册表
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}
