// Package kernel holds the shared value objects of the fulfillment domain:
// identifiers, shipping addresses and money amounts. Every type here is immutable
// and validates itself on construction.
package kernel
