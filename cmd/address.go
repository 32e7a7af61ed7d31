package cmd

import (
	"encoding/hex"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/solipsis/go-ethwallet/pkg/wallet"
	"github.com/spf13/cobra"
)

func init() {
	addressCmd.Flags().StringVarP(&secretKey, "secret-key", "s", "", "Secret key to derive from, prompted for when omitted")
	rootCmd.AddCommand(addressCmd)
}

var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Derive the address of a secret key",
	Long:  "Derives the public key and account address belonging to an existing secret key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		keyHex := secretKey
		if keyHex == "" {
			var err error
			if keyHex, err = promptSecretKey(); err != nil {
				return err
			}
		}
		key, err := wallet.ParsePrivateKey(keyHex)
		if err != nil {
			return err
		}
		defer wallet.ZeroKey(key)

		pub := crypto.FromECDSAPub(&key.PublicKey)[1:]
		addr, err := wallet.DeriveAddress(pub)
		if err != nil {
			return err
		}
		printReport(cmd.OutOrStdout(), wideRule,
			field{"Public Key", hex.EncodeToString(pub)},
			field{"Public Address", addr.Hex()},
		)
		return nil
	},
}
