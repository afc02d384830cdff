package main

import "github.com/tissuemech/fesweep/cmd"

func main() {
	cmd.Execute()
}
