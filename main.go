package main

import "tracker/cmd"

func main() {
	cmd.Execute()
}
