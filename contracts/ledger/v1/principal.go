package v1

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Principal is an authenticated caller identity. The core treats it as an
// opaque 20-byte address; the zero value is the zero address.
type Principal = common.Address

var ZeroPrincipal Principal

var ErrInvalidPrincipal = NewFault(KindValidation, "principal must be a 0x-prefixed 20-byte hex address")

// ParsePrincipal accepts 0x-prefixed hex addresses in any letter case.
func ParsePrincipal(raw string) (Principal, error) {
	value := strings.TrimSpace(raw)
	if !strings.HasPrefix(value, "0x") && !strings.HasPrefix(value, "0X") {
		return ZeroPrincipal, ErrInvalidPrincipal
	}
	if !common.IsHexAddress(value) {
		return ZeroPrincipal, ErrInvalidPrincipal
	}
	return common.HexToAddress(value), nil
}

// ParseOptionalPrincipal maps an empty string to the zero address.
func ParseOptionalPrincipal(raw string) (Principal, error) {
	if strings.TrimSpace(raw) == "" {
		return ZeroPrincipal, nil
	}
	return ParsePrincipal(raw)
}

func IsZero(p Principal) bool {
	return p == ZeroPrincipal
}
