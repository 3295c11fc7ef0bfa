package main

import "github.com/dotcommander/pwmeter/cmd"

func main() {
	cmd.Execute()
}
