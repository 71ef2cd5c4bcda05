package main

import "github.com/machielvdw/clokk/cmd"

func main() {
	cmd.Execute()
}
