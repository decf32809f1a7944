package main

import "github.com/automsg/automsg/cmd"

func main() {
	cmd.Run()
}
