package main

import (
	"os"

	"car-auction/internal/cli"
	"car-auction/utils"
)

func main() {
	cmd := cli.NewRootCommand(os.Stdout)
	if len(os.Args) == 1 {
		cmd.SetArgs([]string{"serve"})
	}
	if err := cmd.Execute(); err != nil {
		utils.Fatal("car-auction failed", map[string]any{"error": err.Error()})
	}
}
