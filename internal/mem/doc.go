// Package mem provides memory allocation utilities.
//
// # Aligned Allocation
//
// The arena stores fixed-width values (runes) that are reinterpreted in
// place, so its buffer always starts at a 64-byte boundary.
package mem
