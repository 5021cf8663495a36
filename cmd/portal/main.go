package main

import (
	"os"

	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
