package entities

import (
	"strings"
	"time"

	domainerrors "provenance/contexts/provenance/asset-registry/domain/errors"
	ledger "provenance/contracts/ledger/v1"
)

// Asset is a minted certificate. Minter and TokenID never change after mint.
type Asset struct {
	SerialID         string
	TokenID          uint64
	Minter           ledger.Principal
	Owner            ledger.Principal
	ApprovedOperator ledger.Principal
	MetadataURI      string
	MintedAt         time.Time
	UpdatedAt        time.Time
}

func NormalizeSerialID(raw string) (string, error) {
	serialID := strings.TrimSpace(raw)
	if serialID == "" {
		return "", domainerrors.ErrEmptySerialID
	}
	return serialID, nil
}

func NewAsset(
	serialID string,
	tokenID uint64,
	minter ledger.Principal,
	to ledger.Principal,
	metadataURI string,
	mintedAt time.Time,
) (Asset, error) {
	serialID, err := NormalizeSerialID(serialID)
	if err != nil {
		return Asset{}, err
	}
	if ledger.IsZero(to) {
		return Asset{}, domainerrors.ErrZeroRecipient
	}
	return Asset{
		SerialID:    serialID,
		TokenID:     tokenID,
		Minter:      minter,
		Owner:       to,
		MetadataURI: strings.TrimSpace(metadataURI),
		MintedAt:    mintedAt.UTC(),
		UpdatedAt:   mintedAt.UTC(),
	}, nil
}

func (a Asset) IsOwnedBy(principal ledger.Principal) bool {
	return a.Owner == principal
}

// CanBeMovedBy reports whether operator holds the owner's current approval.
func (a Asset) CanBeMovedBy(operator ledger.Principal) bool {
	return !ledger.IsZero(a.ApprovedOperator) && a.ApprovedOperator == operator
}

// TransferTo moves ownership and drops any outstanding approval.
func (a Asset) TransferTo(newOwner ledger.Principal, at time.Time) (Asset, error) {
	if ledger.IsZero(newOwner) {
		return Asset{}, domainerrors.ErrZeroRecipient
	}
	a.Owner = newOwner
	a.ApprovedOperator = ledger.ZeroPrincipal
	a.UpdatedAt = at.UTC()
	return a, nil
}

// RegistrySettings is the singleton administrative state of the registry.
type RegistrySettings struct {
	MarketplaceOperator ledger.Principal
	LastTokenID         uint64
}
