package cmd

import (
	"github.com/solipsis/go-ethwallet/pkg/wallet"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Creates a secp256k1 key pair",
	Long: `Creates a random secp256k1 key pair and prints the secret key, the
		uncompressed public key and the derived address. Nothing is written to disk`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		kp, err := wallet.GenerateKeyPair()
		if err != nil {
			return err
		}
		defer wallet.ZeroKey(kp.PrivateKey)

		printReport(cmd.OutOrStdout(), wideRule,
			field{"Secret Key", kp.PrivateKeyHex()},
			field{"Public Key", kp.PublicKeyHex()},
			field{"Public Address", kp.Address().Hex()},
		)
		return nil
	},
}
