package main

import "github.com/mhb8436/aria/cmd"

func main() {
	cmd.Execute()
}
