package main

import "github.com/beInDev/vaultmp/cmd"

func main() {
	cmd.Execute()
}
