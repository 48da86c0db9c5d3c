package main

import "github.com/kotrzina/gas-wizard/cmd/gwgp/cmd"

func main() {
	cmd.Execute()
}
