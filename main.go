package main

import "github.com/mselser95/betting-arcade/cmd"

func main() {
	cmd.Execute()
}
