// Package order contains the Order aggregate and its Item entities.
//
// An Order is built in memory from a creation request, persisted first to
// obtain its storage identity, and only then asked for Items, which carry that
// identity as their foreign key. Items are appended to the Order once they are
// persisted themselves, so an Order's item list always mirrors storage.
//
// Orders are immutable once created: there is no update or delete operation.
package order
