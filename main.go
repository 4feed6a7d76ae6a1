package main

import "github.com/theirongolddev/vaporcalc/cmd"

func main() {
	cmd.Execute()
}
