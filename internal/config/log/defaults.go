package log

// 日志配置默认值
const (
	defaultLogLevel = "info"
	// 默认只输出到标准错误
	defaultFilePath = TargetStderr

	defaultMaxSizeMB  = 100
	defaultMaxBackups = 10
	defaultMaxAgeDays = 30
)

func defaultOptions() *LogOptions {
	return &LogOptions{
		Level:     defaultLogLevel,
		FilePath:  defaultFilePath,
		ToConsole: true,
		Caller:    true,
		Rotation: RotationOptions{
			MaxSizeMB:  defaultMaxSizeMB,
			MaxBackups: defaultMaxBackups,
			MaxAgeDays: defaultMaxAgeDays,
			Compress:   true,
		},
	}
}
