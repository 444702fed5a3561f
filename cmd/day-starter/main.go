package main

import "github.com/oshokin/day-starter/cmd/day-starter/cmd"

func main() {
	cmd.Execute()
}
