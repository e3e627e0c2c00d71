// Package services holds domain services that span more than one aggregate.
//
// The package includes:
//   - StockAllocator: checks a cart snapshot against the stock ledger and reserves it all-or-nothing
package services
