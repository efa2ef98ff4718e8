package main

import "github.com/Bitlatte/alfred-site/cmd"

func main() {
	cmd.Execute()
}
