// Package internalcheck holds static policy tests over the schnorrkey
// packages. It has no exported API.
//
// The tests load the production (non-test) sources with
// golang.org/x/tools/go/packages and fail on:
//
//   - == or != between byte slices or arrays (use crypto/subtle)
//   - %x / %X format verbs in fmt and log calls (secret leakage)
//   - calls to panic (every failure must be a returned error)
package internalcheck
