package cmd

import (
	"github.com/solipsis/go-ethwallet/pkg/wallet"
	"github.com/spf13/cobra"
)

func init() {
	balanceCmd.Flags().StringVarP(&account, "address", "a", "", "The address to check the balance of")
	balanceCmd.MarkFlagRequired("address")
	rootCmd.AddCommand(balanceCmd)
}

var account string

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Checks the balance of an address",
	Long:  "Checks the balance of an address at the latest block and prints it in ether",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := wallet.ParseAddress(account)
		if err != nil {
			return err
		}

		client, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		defer client.Close()

		balance, err := client.BalanceAt(cmd.Context(), addr)
		if err != nil {
			return err
		}
		printReport(cmd.OutOrStdout(), narrowRule, field{"Wallet Balance", formatBalance(balance)})
		return nil
	},
}
