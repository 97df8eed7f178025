package main

import (
	"concert-ticket-pipeline/cmd"
	_ "go.uber.org/automaxprocs"
)

func main() {
	cmd.Start()
}
