package main

import "github.com/information-sharing-networks/certgw/internal/cli"

func main() {
	cli.Execute()
}
