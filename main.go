package main

import "asset-cloner/cmd"

func main() {
	cmd.Execute()
}
