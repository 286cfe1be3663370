package main

import (
	"fmt"
	"os"

	"github.com/example/ec-showcase/internal/config"
	"github.com/example/ec-showcase/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	configPath string
	verbose    bool

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "showcasectl",
	Short: "Inspect and operate the homepage collection showcase",
	Long: `showcasectl works against the same configuration file as the API.

It prints the assembled slot layout, resolves cards at a given tick,
validates layouts strictly against the catalog, issues admin tokens and
seeds the Postgres product table.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := "warn"
		if verbose {
			level = "debug"
		}
		l, err := logging.New(config.LoggingConfig{Level: level, Development: true})
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
}

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Print the assembled slots for each device variant",
	RunE:  runLayout,
}

var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "Resolve the showcase cards at a tick",
	Long: `Resolves every card of the configured layout against the product
source at the given tick and prints the result as JSON.

Example:
  showcasectl cards --variant wide --tick 3`,
	RunE: runCards,
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration, checking layout slugs against the catalog",
	RunE:  runValidate,
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an access token for the admin endpoints",
	RunE:  runToken,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Upsert the built-in products into Postgres",
	Long: `Writes the built-in product set to the showcase_products table and,
when Kafka is enabled, announces each touched collection so cached
product lists are evicted.`,
	RunE: runSeed,
}

var initConfigCmd = &cobra.Command{
	Use:   "init-config [path]",
	Short: "Write the default configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInitConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath(), "Config file (or set SHOWCASE_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	layoutCmd.Flags().StringVar(&variantFlag, "variant", "", "Only this variant (compact or wide)")
	cardsCmd.Flags().StringVar(&variantFlag, "variant", "", "Only this variant (compact or wide)")
	cardsCmd.Flags().IntVar(&tickFlag, "tick", 0, "Rotation tick to resolve at")
	tokenCmd.Flags().StringVar(&operatorFlag, "operator", "", "Operator name (required)")
	tokenCmd.Flags().StringVar(&roleFlag, "role", "admin", "Role claim (admin or editor)")
	tokenCmd.MarkFlagRequired("operator")

	rootCmd.AddCommand(layoutCmd)
	rootCmd.AddCommand(cardsCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(initConfigCmd)
}

func defaultConfigPath() string {
	if p := os.Getenv("SHOWCASE_CONFIG"); p != "" {
		return p
	}
	return "showcase.yaml"
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
