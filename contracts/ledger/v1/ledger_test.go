package v1

import (
	"errors"
	"fmt"
	"testing"
)

func TestFaultMatchesByKindAndReason(t *testing.T) {
	tokenMissing := NewFault(KindNotFound, "token does not exist")
	wrapped := fmt.Errorf("owner lookup: %w", NewFault(KindNotFound, "token does not exist"))

	if !errors.Is(wrapped, ErrNotFound) {
		t.Fatalf("expected kind-only sentinel to match")
	}
	if !errors.Is(wrapped, tokenMissing) {
		t.Fatalf("expected kind+reason sentinel to match")
	}
	if errors.Is(wrapped, NewFault(KindNotFound, "watch not listed")) {
		t.Fatalf("different reasons must not match")
	}
	if errors.Is(wrapped, ErrValidation) {
		t.Fatalf("different kinds must not match")
	}

	kind, ok := KindOf(wrapped)
	if !ok || kind != KindNotFound {
		t.Fatalf("expected not_found kind, got %q %v", kind, ok)
	}
	if _, ok := KindOf(errors.New("plain")); ok {
		t.Fatalf("plain errors carry no kind")
	}
	if ErrStolenAsset.Error() != "stolen_asset" {
		t.Fatalf("kind-only fault should render its kind, got %q", ErrStolenAsset.Error())
	}
}

func TestParsePrincipal(t *testing.T) {
	p, err := ParsePrincipal("0x00000000000000000000000000000000000000aB")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if IsZero(p) {
		t.Fatalf("expected non-zero principal")
	}
	for _, raw := range []string{"", "abc", "00000000000000000000000000000000000000ab", "0x1234"} {
		if _, err := ParsePrincipal(raw); !errors.Is(err, ErrValidation) {
			t.Fatalf("expected validation error for %q, got %v", raw, err)
		}
	}
	zero, err := ParseOptionalPrincipal("  ")
	if err != nil || !IsZero(zero) {
		t.Fatalf("empty optional principal should be zero, got %v %v", zero, err)
	}
}

func TestEtherConversion(t *testing.T) {
	one, err := ParseEther("1.0")
	if err != nil {
		t.Fatalf("parse ether: %v", err)
	}
	if FormatWei(one) != "1000000000000000000" {
		t.Fatalf("unexpected wei: %s", FormatWei(one))
	}
	if FormatEther(one) != "1" {
		t.Fatalf("unexpected ether rendering: %s", FormatEther(one))
	}

	if _, err := ParseEther("0.0000000000000000001"); !errors.Is(err, ErrAmountPrecision) {
		t.Fatalf("expected precision error, got %v", err)
	}
	if _, err := ParseEther("-1"); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected invalid amount, got %v", err)
	}
	if _, err := ParseEther("1e80"); !errors.Is(err, ErrAmountOverflow) {
		t.Fatalf("expected overflow, got %v", err)
	}

	for _, raw := range []string{"1e100000000", "1e2147483647"} {
		if _, err := ParseEther(raw); !errors.Is(err, ErrAmountOverflow) {
			t.Fatalf("%s: expected overflow, got %v", raw, err)
		}
	}
	for _, raw := range []string{"1e-100000000", "1000000e-100000000"} {
		if _, err := ParseEther(raw); !errors.Is(err, ErrAmountPrecision) {
			t.Fatalf("%s: expected precision error, got %v", raw, err)
		}
	}
	if zero, err := ParseEther("0e-100000000"); err != nil || !zero.IsZero() {
		t.Fatalf("expected zero, got %s %v", zero.String(), err)
	}
	smallest, err := ParseEther("1000e-21")
	if err != nil || smallest.Uint64() != 1 {
		t.Fatalf("expected one wei, got %s %v", smallest.String(), err)
	}
	largest, err := ParseEther("1e59")
	if err != nil || largest.String() != "100000000000000000000000000000000000000000000000000000000000000000000000000000" {
		t.Fatalf("expected 10^77 wei, got %s %v", largest.String(), err)
	}

	wei, err := ParseWei("50000000000000000")
	if err != nil {
		t.Fatalf("parse wei: %v", err)
	}
	if FormatEther(wei) != "0.05" {
		t.Fatalf("unexpected ether rendering: %s", FormatEther(wei))
	}
}

func TestApplyBasisPointsFloors(t *testing.T) {
	price, _ := ParseEther("1")
	royalty, overflow := ApplyBasisPoints(price, 500)
	if overflow {
		t.Fatalf("unexpected overflow")
	}
	if FormatEther(royalty) != "0.05" {
		t.Fatalf("expected 0.05, got %s", FormatEther(royalty))
	}

	odd := Wei(199)
	royalty, _ = ApplyBasisPoints(odd, 50)
	if royalty.Uint64() != 0 {
		t.Fatalf("expected floor to 0, got %d", royalty.Uint64())
	}
	royalty, _ = ApplyBasisPoints(Wei(10001), 10000)
	if royalty.Uint64() != 10001 {
		t.Fatalf("100%% rate should return the amount, got %d", royalty.Uint64())
	}
}

func TestSumReportsOverflow(t *testing.T) {
	total, overflow := Sum(Wei(1), Wei(2), Wei(3))
	if overflow || total.Uint64() != 6 {
		t.Fatalf("unexpected sum %d overflow=%v", total.Uint64(), overflow)
	}

	max, _ := ParseWei("115792089237316195423570985008687907853269984665640564039457584007913129639935")
	if _, overflow := Sum(max, Wei(1)); !overflow {
		t.Fatalf("expected overflow")
	}
}
