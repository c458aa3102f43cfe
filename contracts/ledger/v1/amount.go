package v1

import (
	"math/big"
	"strings"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// Amount is a currency amount in wei (10^-18 of one unit).
type Amount = uint256.Int

// BasisPoints is a rate in ten-thousandths.
type BasisPoints uint32

const (
	MaxBasisPoints BasisPoints = 10000
	etherDecimals              = 18
	maxWeiDigits               = 78
)

var (
	ErrInvalidAmount   = NewFault(KindValidation, "amount must be a non-negative integer number of wei")
	ErrAmountPrecision = NewFault(KindValidation, "amount has more than 18 decimal places")
	ErrAmountOverflow  = NewFault(KindValidation, "amount exceeds 256 bits")
)

func Wei(value uint64) Amount {
	return *uint256.NewInt(value)
}

// ParseWei parses a base-10 integer wei amount.
func ParseWei(raw string) (Amount, error) {
	value, err := uint256.FromDecimal(strings.TrimSpace(raw))
	if err != nil {
		return Amount{}, ErrInvalidAmount
	}
	return *value, nil
}

// ParseEther parses a decimal currency amount ("1.05") into wei. The
// exponent is bounded before any power of ten is materialized.
func ParseEther(raw string) (Amount, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || value.IsNegative() {
		return Amount{}, ErrInvalidAmount
	}
	if value.IsZero() {
		return Amount{}, nil
	}

	coefficient := value.Coefficient()
	shift := int64(value.Exponent()) + etherDecimals
	ten := big.NewInt(10)
	var rem big.Int
	for shift < 0 {
		quo, r := new(big.Int).QuoRem(coefficient, ten, &rem)
		if r.Sign() != 0 {
			return Amount{}, ErrAmountPrecision
		}
		coefficient = quo
		shift++
	}
	// 10^78 exceeds 2^256.
	if shift >= maxWeiDigits {
		return Amount{}, ErrAmountOverflow
	}

	wei := new(big.Int).Mul(coefficient, new(big.Int).Exp(ten, big.NewInt(shift), nil))
	out, overflow := uint256.FromBig(wei)
	if overflow {
		return Amount{}, ErrAmountOverflow
	}
	return *out, nil
}

func FormatEther(amount Amount) string {
	return decimal.NewFromBigInt(amount.ToBig(), -etherDecimals).String()
}

func FormatWei(amount Amount) string {
	return amount.Dec()
}

// ApplyBasisPoints returns floor(amount * bps / 10000). The boolean reports
// overflow of the 256-bit result.
func ApplyBasisPoints(amount Amount, bps BasisPoints) (Amount, bool) {
	rate := uint256.NewInt(uint64(bps))
	denominator := uint256.NewInt(uint64(MaxBasisPoints))
	out, overflow := new(uint256.Int).MulDivOverflow(&amount, rate, denominator)
	return *out, overflow
}

// Sum adds amounts, reporting overflow.
func Sum(amounts ...Amount) (Amount, bool) {
	var total uint256.Int
	for i := range amounts {
		if _, overflow := total.AddOverflow(&total, &amounts[i]); overflow {
			return Amount{}, true
		}
	}
	return total, false
}
