// Package assetregistry owns the canonical serial id to certificate mapping:
// who minted each asset, who owns it now, and which operator may move it.
//
// Minting is gated by the minter registry through the MinterDirectory port.
// The marketplace moves assets only through Transfer, as the approved
// operator.
package assetregistry
