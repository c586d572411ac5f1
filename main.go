package main

import "github.com/Tim-element/element-nutrients-automation/cmd"

func main() {
	cmd.Execute()
}
