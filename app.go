package main

import "github.com/masmgr/logbound-go/cmd"

func main() {
	cmd.Run()
}
