package main

import "twiga-dash/cmd"

func main() {
	cmd.Execute()
}
