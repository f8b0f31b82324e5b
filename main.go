// Package main is the entry point for the remock CLI.
package main

import "remock.dev/pkg/remock/cmd"

func main() {
	cmd.Execute()
}
