package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-2048/internal/config"
)

var flagConfigResolved bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Print the built-in t2048.yaml. Save it to ~/.tui2048/configs/t2048.yaml
or ./configs/t2048.yaml and edit it to change board size, spawn rates
and campaign levels.

With --resolved, prints the configuration the next game would use
after applying --config and the search path.

Examples:
  tui2048 config > ~/.tui2048/configs/t2048.yaml
  tui2048 config --resolved --config ./my.yaml`,
	Run: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigResolved, "resolved", false, "Print the configuration after loading overrides")
}

func runConfig(_ *cobra.Command, _ []string) {
	if !flagConfigResolved {
		fmt.Print(string(config.DefaultYAML()))
		return
	}

	cfg, err := config.LoadT2048(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(string(out))
}
