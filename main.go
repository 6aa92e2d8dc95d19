package main

import "github.com/endorses/kmpcat/cmd"

func main() {
	cmd.Execute()
}
