package cmd

import (
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/solipsis/go-ethwallet/pkg/wallet"
	"github.com/spf13/cobra"
)

func init() {
	sendCmd.Flags().StringVarP(&recipient, "to-addr", "t", "", "The address to send to")
	sendCmd.Flags().StringVarP(&amount, "value", "v", "", "The value to send in ether, e.g. 0.25")
	sendCmd.Flags().StringVarP(&secretKey, "secret-key", "s", "", "The secret key to sign with, prompted for when omitted")
	sendCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")
	sendCmd.MarkFlagRequired("to-addr")
	sendCmd.MarkFlagRequired("value")
	rootCmd.AddCommand(sendCmd)
}

var (
	recipient string
	amount    string
	secretKey string
	assumeYes bool
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Sends ether to an address",
	Long: `Signs a value transfer with the given secret key and broadcasts it. The nonce,
		gas price and chain id are read from the node right before signing`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {

		// everything local is checked before touching the network
		to, err := wallet.ParseAddress(recipient)
		if err != nil {
			return err
		}
		wei, err := wallet.ParseEther(amount)
		if err != nil {
			return err
		}
		tx, err := wallet.NewTransactionWei(to, wei)
		if err != nil {
			return err
		}

		keyHex := secretKey
		if keyHex == "" {
			if keyHex, err = promptSecretKey(); err != nil {
				return err
			}
		}
		key, err := wallet.ParsePrivateKey(keyHex)
		if err != nil {
			return err
		}
		defer wallet.ZeroKey(key)

		if !assumeYes {
			from := crypto.PubkeyToAddress(key.PublicKey)
			if err := confirmSend(cmd.OutOrStdout(), from, to, wallet.FormatEther(wei)); err != nil {
				return err
			}
		}

		client, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		defer client.Close()

		hash, err := wallet.SignAndSend(cmd.Context(), client, tx, key)
		if err != nil {
			return err
		}
		printReport(cmd.OutOrStdout(), wideRule,
			field{"Transaction Hash", hash.Hex()},
			field{"Explorer", explorerLink(explorerURL, hash)},
		)
		return nil
	},
}
