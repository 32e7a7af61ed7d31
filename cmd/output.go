package cmd

import (
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/solipsis/go-ethwallet/pkg/wallet"
)

// Rule widths used by the original report layout
const (
	wideRule   = 92
	narrowRule = 56
	blockRule  = 51
)

var highlight = color.New(color.FgGreen, color.Bold).SprintFunc()

type field struct {
	label, value string
}

// printReport writes fields between two horizontal rules, values highlighted
func printReport(w io.Writer, width int, fields ...field) {
	rule := strings.Repeat("=", width)
	fmt.Fprintf(w, "\n%s\n\n", rule)
	for _, f := range fields {
		fmt.Fprintf(w, "%-18s%s\n", f.label+":", highlight(f.value))
	}
	fmt.Fprintf(w, "\n%s\n\n", rule)
}

func formatBalance(wei *big.Int) string {
	return wallet.FormatEther(wei) + " ETH"
}

func explorerLink(base string, hash common.Hash) string {
	return strings.TrimRight(base, "/") + "/tx/" + hash.Hex()
}
