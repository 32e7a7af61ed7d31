package cmd

import (
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(blockCmd)
}

var blockCmd = &cobra.Command{
	Use:   "block",
	Short: "Returns the current block number",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		defer client.Close()

		number, err := client.BlockNumber(cmd.Context())
		if err != nil {
			return err
		}
		printReport(cmd.OutOrStdout(), blockRule, field{"Block Number", strconv.FormatUint(number, 10)})
		return nil
	},
}
