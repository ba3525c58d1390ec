// Package pairing holds the unit dotstash registers, a Pairing of a
// home-side and an archive-side path reference, and the pure relationship
// algebra over pairings: ancestry, child placement, link-source resolution
// and backup naming.
package pairing
