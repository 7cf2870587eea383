// Package kernel provides the shared value objects of the bakery domain.
//
// The package includes:
//   - ID: the integer identity used by users, orders, applications and messages
//   - Money: a non-negative decimal amount used for prices and order totals
//
// Both are immutable and safe for concurrent use.
package kernel
