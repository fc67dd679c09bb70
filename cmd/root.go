package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Beastly713/hashira/internal/config"
	"github.com/Beastly713/hashira/internal/logging"
)

var (
	configPath string
	appConfig  *config.Config
)

// flagKeys maps flag names to the config keys they override.
var flagKeys = map[string]string{
	"log-level":   "logging.level",
	"log-format":  "logging.format",
	"output":      "output",
	"workers":     "workers",
	"verify":      "verify.enabled",
	"max-subsets": "verify.max_subsets",
}

var rootCmd = &cobra.Command{
	Use:   "hashira",
	Short: "Recover the secret constant from threshold shares",
	Long: `Hashira: recovers the secret of a threshold secret-sharing scheme
from a set of (x, y) shares whose y-values may be written in any base from
2 to 36. The constant term is interpolated exactly, with no rounding.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		v := viper.New()
		for name, key := range flagKeys {
			if f := cmd.Flags().Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return err
				}
			}
		}

		cfg, err := config.Load(v, configPath)
		if err != nil {
			return err
		}
		appConfig = cfg

		return logging.Setup(cfg.Logging, cmd.ErrOrStderr())
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ./hashira.yaml or ~/.config/hashira/hashira.yaml)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: trace, debug, info, warn, error, or disabled")
	rootCmd.PersistentFlags().String("log-format", "console", "Log format: console or json")
}
