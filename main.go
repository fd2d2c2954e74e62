package main

import "github.com/jsphweid/musictools/cmd"

func main() {
	cmd.Execute()
}
