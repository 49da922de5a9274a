package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
)

// Format 输出格式
type Format string

const (
	// FormatTable 表格格式（默认）
	FormatTable Format = "table"
	// FormatJSON JSON格式
	FormatJSON Format = "json"
	// FormatPretty 美化JSON格式
	FormatPretty Format = "pretty"
)

// Formatter 输出格式化器
type Formatter struct {
	format Format
	writer io.Writer
	silent bool
}

// NewFormatter 创建格式化器
func NewFormatter(format Format, writer io.Writer) *Formatter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Formatter{format: format, writer: writer}
}

// SetSilent 设置静默模式
func (f *Formatter) SetSilent(silent bool) {
	f.silent = silent
}

// IsTable 是否为表格输出
func (f *Formatter) IsTable() bool {
	return f.format == FormatTable
}

// PrintJSON 打印JSON；table 模式下按 pretty 输出
func (f *Formatter) PrintJSON(data interface{}) error {
	if f.silent {
		return nil
	}

	var output []byte
	var err error
	if f.format == FormatJSON {
		output, err = json.Marshal(data)
	} else {
		output, err = json.MarshalIndent(data, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if _, err := fmt.Fprintln(f.writer, string(output)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// PrintTable 打印表格；第一行为表头
func (f *Formatter) PrintTable(rows [][]string) error {
	if f.silent {
		return nil
	}
	return pterm.DefaultTable.
		WithHasHeader(true).
		WithWriter(f.writer).
		WithData(pterm.TableData(rows)).
		Render()
}
