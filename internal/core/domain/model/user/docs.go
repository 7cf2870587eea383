// Package user holds the account aggregate and the closed Role enumeration.
//
// Roles form a strict hierarchy (customer, junior_baker, main_baker, admin).
// Comparisons between roles belong to the access package; other packages ask
// access.CanAct instead of comparing roles themselves.
package user
