// Package kernel provides domain primitives shared by the aggregates of the
// orders system.
//
// ID is the numeric identity issued by storage. Aggregates start with an
// unassigned (zero) ID and receive the generated value exactly once, when the
// repository persists them. Child entities refer to their parent by ID only.
package kernel
