// Package cart models the buyer's cart and the immutable snapshot taken from it at
// checkout. The snapshot freezes seller, name and unit price from the stock ledger so
// later catalog edits never reach placed orders.
package cart
