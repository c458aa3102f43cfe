// Package resalemarketplace lists certified assets for resale and settles
// purchases. A purchase moves the asset through the asset registry, removes
// the listing and credits seller, minter royalty and buyer change to escrow
// balances in one unit of work. Funds leave escrow only through Withdraw,
// after internal state is already settled.
//
// Layering:
// - domain: listing and balance invariants, royalty and settlement math
// - application: list/cancel/buy/withdraw commands and read queries
// - ports: peer registries, payment rail, repository and transactor
// - adapters: HTTP, memory, gorm and payment rail implementations
// - transport: module-private DTOs for HTTP contracts
package resalemarketplace
