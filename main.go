package main

import (
	"github.com/JohnGooler/UPS-monitor/cmd"
)

func main() {
	cmd.Execute()
}
