package main

import "tokenomics/cmd"

func main() {
	cmd.Execute()
}
