package main

import "github.com/masmgr/histview/cmd"

func main() {
	cmd.Run()
}
