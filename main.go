package main

import "github.com/mj1618/trade-overlay/cmd"

func main() {
	cmd.Execute()
}
