// Package configs 内置配置文件
package configs

import _ "embed"

// 未指定配置文件时使用的开发环境配置
//
//go:embed development/config.json
var developmentConfig []byte

// GetDevelopmentConfig 获取开发环境配置
func GetDevelopmentConfig() []byte {
	return developmentConfig
}
