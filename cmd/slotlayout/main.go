// slotlayout 存储布局解析与模拟链头服务
//
// 用法:
//
//	slotlayout resolve "struct Vault.Position[2]" --ast build/out.json
//	slotlayout declarations --ast build/out.json
//	slotlayout serve --config configs/slotlayout.json
package main

func main() {
	Execute()
}
