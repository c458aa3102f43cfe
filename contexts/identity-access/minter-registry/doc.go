// Package minterregistry is the authorization registry of the provenance
// ledger: the whitelist of principals allowed to mint certificates, each with
// a brand label, a location label and a royalty rate.
//
// Layering:
// - domain: minter profile invariants and faults
// - application: add/remove commands and lookup queries over explicit ports
// - ports: repository, transactor, clock and id boundaries
// - adapters: HTTP, memory and gorm implementations
// - transport: module-private DTOs for HTTP contracts
//
// Other contexts read this registry only through bridges in
// internal/app/bootstrap.
package minterregistry
