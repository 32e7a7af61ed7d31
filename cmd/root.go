package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/solipsis/go-ethwallet/pkg/chain"
	"github.com/spf13/cobra"
)

const defaultExplorer = "https://holesky.etherscan.io"

// Environment variables consulted for the node endpoint, in order
var endpointEnv = []string{"ETH_RPC_URL", "QUICKNODE_HOLESKY_WS"}

var (
	rpcURL      string
	explorerURL string
	verbose     bool
)

func init() {
	cobra.OnInitialize(loadEnv)
	rootCmd.PersistentFlags().StringVar(&rpcURL, "rpc", "", "Node endpoint, defaults to $"+strings.Join(endpointEnv, " then $"))
	rootCmd.PersistentFlags().StringVar(&explorerURL, "explorer", defaultExplorer, "Block explorer used for transaction links")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "Trace node requests to stderr")
}

// loadEnv reads a .env file from the working directory if there is one.
// Variables already set in the environment win
func loadEnv() {
	_ = godotenv.Load()
}

func endpoint() (string, error) {
	if rpcURL != "" {
		return rpcURL, nil
	}
	for _, key := range endpointEnv {
		if v := os.Getenv(key); v != "" {
			return v, nil
		}
	}
	return "", errors.New("no node endpoint, use --rpc or set " + strings.Join(endpointEnv, " or "))
}

// connect opens the node connection used by a single command invocation
func connect(ctx context.Context) (*chain.Client, error) {
	url, err := endpoint()
	if err != nil {
		return nil, err
	}
	cfg := chain.DefaultConfig()
	if verbose {
		cfg.Logger = log.New(os.Stderr, "[rpc] ", log.LstdFlags)
	}
	return chain.Dial(ctx, url, cfg)
}

var rootCmd = &cobra.Command{
	Use:           "ethwallet",
	Short:         "Create keys, send ether and query an Ethereum node",
	Long:          "A command-line tool for managing an Ethereum account against a remote node (holesky by default)",
	Version:       "0.1.0",
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		red := color.New(color.FgRed, color.Bold).FprintFunc()
		red(os.Stderr, "Error: ")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
