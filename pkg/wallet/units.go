package wallet

import (
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/params"
)

// plain base 10 only, big.Rat would also take 0x, 0b, 0o and a/b forms
var decimalAmount = regexp.MustCompile(`^[+-]?[0-9]+(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

var (
	etherWei    = big.NewInt(params.Ether)
	weiPerEther = new(big.Rat).SetInt(etherWei)
)

// EtherToWei converts a whole-token amount to wei, rounding to the nearest
// integer. The float is read through its shortest decimal form, so 0.1 becomes
// exactly 10^17 wei. Amounts finer than 1 wei are lost; use ParseEther or
// NewTransactionWei when exactness matters
func EtherToWei(ether float64) (*big.Int, error) {
	if math.IsNaN(ether) || math.IsInf(ether, 0) {
		return nil, errorf(InvalidAmount, "amount must be finite, got %v", ether)
	}
	if ether < 0 {
		return nil, errorf(InvalidAmount, "amount must not be negative, got %v", ether)
	}
	r, ok := new(big.Rat).SetString(strconv.FormatFloat(ether, 'g', -1, 64))
	if !ok {
		return nil, errorf(InvalidAmount, "unable to convert %v", ether)
	}
	return roundRat(r.Mul(r, weiPerEther)), nil
}

// ParseEther parses a decimal ether amount such as "1.5" or "0.000000000000000001"
// without any loss of precision. Amounts with more than 18 fractional digits
// are rejected
func ParseEther(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if !decimalAmount.MatchString(s) {
		return nil, errorf(InvalidAmount, "%q is not a decimal amount", s)
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, errorf(InvalidAmount, "%q is not a decimal amount", s)
	}
	if r.Sign() < 0 {
		return nil, errorf(InvalidAmount, "amount must not be negative, got %s", s)
	}
	r.Mul(r, weiPerEther)
	if !r.IsInt() {
		return nil, errorf(InvalidAmount, "%s has more precision than 1 wei", s)
	}
	return new(big.Int).Set(r.Num()), nil
}

// FormatEther renders a wei amount in ether with trailing zeros trimmed
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	s := new(big.Rat).SetFrac(wei, etherWei).FloatString(18)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// roundRat rounds a non-negative rational half up to an integer
func roundRat(r *big.Rat) *big.Int {
	q, m := new(big.Int).QuoRem(r.Num(), r.Denom(), new(big.Int))
	if m.Lsh(m, 1).Cmp(r.Denom()) >= 0 {
		q.Add(q, big.NewInt(1))
	}
	return q
}
