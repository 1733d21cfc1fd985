package main

import "github.com/devicelab-dev/flowdigest/pkg/cli"

func main() {
	cli.Execute()
}
