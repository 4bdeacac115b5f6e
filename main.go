package main

import "manatan-gateway/cmd"

func main() {
	cmd.Execute()
}
