package main

import (
	"github.com/caixalabs/caixa2alterdata/internal/commands"
)

func main() {
	commands.Execute()
}
