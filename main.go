package main

import "github.com/alraulpm-lang/checador/cmd"

func main() {
	cmd.Execute()
}
