// Package theftregistry records which certified assets their owners have
// reported stolen. The flag is keyed by serial id and only the current owner,
// as reported by the asset registry, may toggle it.
//
// The marketplace consults IsStolen before accepting a listing.
package theftregistry
