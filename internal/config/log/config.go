package log

import (
	configtypes "github.com/weisyn/slotlayout/pkg/types"
	"go.uber.org/zap/zapcore"
)

// 特殊输出目标：只写终端，不落文件
const (
	TargetStdout = "stdout"
	TargetStderr = "stderr"
)

// LogOptions 日志配置选项
type LogOptions struct {
	Level    string `json:"level"`
	FilePath string `json:"file_path"` // 日志文件，或 stdout / stderr
	// ToConsole 写文件时是否同时输出到 stderr
	ToConsole bool            `json:"to_console"`
	Caller    bool            `json:"caller"`
	Rotation  RotationOptions `json:"rotation"`
}

// RotationOptions lumberjack 轮转参数
type RotationOptions struct {
	MaxSizeMB  int  `json:"max_size_mb"`
	MaxBackups int  `json:"max_backups"`
	MaxAgeDays int  `json:"max_age_days"`
	Compress   bool `json:"compress"`
}

// Config 日志配置
type Config struct {
	options *LogOptions
}

// New 以默认值为底合并用户配置
func New(userConfig *configtypes.UserLogConfig) *Config {
	options := defaultOptions()
	if userConfig == nil {
		return &Config{options: options}
	}

	if userConfig.Level != nil {
		options.Level = *userConfig.Level
	}
	if userConfig.FilePath != nil {
		options.FilePath = *userConfig.FilePath
		// 写文件时默认不再输出到终端
		options.ToConsole = !isFileTarget(options.FilePath)
	}
	if userConfig.ToConsole != nil {
		options.ToConsole = *userConfig.ToConsole
	}
	if userConfig.Caller != nil {
		options.Caller = *userConfig.Caller
	}
	return &Config{options: options}
}

// NewFromOptions 使用已构建的选项；未设置的轮转参数取默认值
func NewFromOptions(options *LogOptions) *Config {
	if options == nil {
		return New(nil)
	}
	merged := *options
	if merged.Rotation == (RotationOptions{}) {
		merged.Rotation = defaultOptions().Rotation
	}
	return &Config{options: &merged}
}

// GetOptions 获取日志配置选项
func (c *Config) GetOptions() *LogOptions {
	return c.options
}

// ZapLevel 无法识别的级别按 info 处理
func (c *Config) ZapLevel() zapcore.Level {
	level, err := zapcore.ParseLevel(c.options.Level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// WritesFile 是否写入日志文件
func (c *Config) WritesFile() bool {
	return isFileTarget(c.options.FilePath)
}

// ValidLevel 判断级别字符串能否被 zap 识别
func ValidLevel(level string) bool {
	_, err := zapcore.ParseLevel(level)
	return err == nil
}

func isFileTarget(path string) bool {
	return path != "" && path != TargetStdout && path != TargetStderr
}
