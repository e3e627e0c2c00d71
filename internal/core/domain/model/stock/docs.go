// Package stock models the stock ledger: one entry per product holding the catalog
// snapshot used at checkout (seller, name, unit price) and the available quantity.
//
// Available quantity only ever goes down through Debit, which never lets it become
// negative. The checkout transaction is the only writer.
package stock
