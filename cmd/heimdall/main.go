package main

import "github.com/tessro/heimdall/internal/cli"

func main() {
	cli.Execute()
}
