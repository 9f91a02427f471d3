package main

import "cliprobe/internal/cli"

func main() {
    cli.Execute()
}
