package cmd

import (
	"fmt"
	"os"

	"github.com/chaintrace/chaintrace/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is the current release. Overridable via build ldflags:
//
//	go build -ldflags "-X github.com/chaintrace/chaintrace/cmd.Version=1.2.3" .
var Version = "1.0.0"

var (
	cfgDir       string
	cfg          *config.Config
	verbose      bool
	rpcFlag      string
	contractFlag string
)

// rootCmd is the top-level command.
var rootCmd = &cobra.Command{
	Use:   "chaintrace",
	Short: "Supply chain provenance CLI",
	Long: `chaintrace — terminal client for a role-based supply chain contract.

  Register as producer, factory, retailer or consumer; mint tokens,
  derive them from parents, move them between participants, and trace
  any token back to its raw materials.

Global flags --rpc and --contract override the configured endpoint and
contract address for a single invocation. Persist them with:
  chaintrace config set-rpc <url>
  chaintrace config set-contract <address>`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		cfg, err = config.Load(cfgDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if rpcFlag != "" {
			cfg.RPCURL = rpcFlag
		}
		if contractFlag != "" {
			cfg.ContractAddress = contractFlag
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// A .env next to the binary can carry CHAINTRACE_* overrides; missing
	// file is fine.
	godotenv.Load() //nolint:errcheck

	// CHAINTRACE_CONFIG_DIR env var overrides --config flag.
	if envDir := os.Getenv("CHAINTRACE_CONFIG_DIR"); envDir != "" {
		cfgDir = envDir
	}

	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", cfgDir, "config directory (default: ~/.chaintrace)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&rpcFlag, "rpc", "", "RPC endpoint override")
	rootCmd.PersistentFlags().StringVar(&contractFlag, "contract", "", "contract address override")

	// Register all sub-commands.
	rootCmd.AddCommand(
		initCmd,
		walletCmd,
		connectCmd,
		disconnectCmd,
		whoamiCmd,
		registerCmd,
		adminCmd,
		tokenCmd,
		transferCmd,
		watchCmd,
		configCmd,
	)
}
