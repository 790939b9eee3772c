package main

import "github.com/droidport/droidport/cmd"

func main() {
	cmd.Execute()
}
