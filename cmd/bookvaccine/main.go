package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pulkitkochar/Book-Vaccine/internal/utils"
)

var configPath string

func main() {
	godotenv.Load()
	utils.InitializeLogger()
	defer utils.Logger.Sync()

	root := &cobra.Command{
		Use:   "bookvaccine",
		Short: "Poll CoWIN for open vaccination slots and book one",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a yaml config file")

	root.AddCommand(runCMD(), loginCMD(), locationsCMD(), beneficiariesCMD())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
