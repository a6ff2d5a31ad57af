// Command worldgen is the batch CLI surface named by spec.md 6's
// "external interfaces" section: a cobra.Command tree with viper-bound
// flags, grounded on inmaputil's config/flag wiring
// (acf91a7f_spatialmodel-inmap__inmaputil-cmd.go.go) — the pack's
// closest example of a cobra/viper-driven scientific-simulation CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cfg holds root-level configuration, following inmaputil's package-
// level *viper.Viper (there named Cfg) bound to the root command's
// persistent flags.
var cfg = viper.New()

var rootCmd = &cobra.Command{
	Use:   "worldgen",
	Short: "Procedural hex-sphere world generator",
	Long: `worldgen drives the topology, tectonics, features, hydrology, and
climate stages to build a complete planet and persists the result as a
versioned binary snapshot.

Configuration can be supplied by flag, by a config file named with
--config, or by environment variables prefixed WORLDGEN_.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return readConfig() },
}

func readConfig() error {
	vipers := []*viper.Viper{cfg, generateCfg, validateCfg}
	for _, v := range vipers {
		v.SetEnvPrefix("WORLDGEN")
		v.AutomaticEnv()
	}
	if path := cfg.GetString("config"); path != "" {
		for _, v := range vipers {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return fmt.Errorf("worldgen: reading configuration file: %w", err)
			}
		}
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "configuration file path")
	cfg.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func main() {
	os.Exit(run())
}

func run() int {
	if err := rootCmd.Execute(); err != nil {
		return exitCodeFor(err)
	}
	return exitOK
}
