package cmd

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/solipsis/go-ethwallet/pkg/wallet"
)

// Prompt the user for a secret key without echoing it
func promptSecretKey() (string, error) {
	validate := func(in string) error {
		key, err := wallet.ParsePrivateKey(in)
		wallet.ZeroKey(key)
		return err
	}
	prompt := promptui.Prompt{
		Label:    "Secret key",
		Mask:     '*',
		Validate: validate,
	}
	return prompt.Run()
}

// Ask the user to confirm a transfer before anything is signed.
// Declining returns promptui.ErrAbort
func confirmSend(w io.Writer, from, to common.Address, ether string) error {
	magenta := color.New(color.FgMagenta).FprintFunc()
	magenta(w, fmt.Sprintf("From:   %s\nTo:     %s\nAmount: %s ETH\n", from.Hex(), to.Hex(), ether))

	prompt := promptui.Prompt{
		Label:     "Sign and broadcast",
		IsConfirm: true,
	}
	_, err := prompt.Run()
	return err
}
