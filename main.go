package main

import "tcpscan/cmd"

func main() {
	cmd.Execute()
}
