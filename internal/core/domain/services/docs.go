// Package services provides domain services that coordinate rules spanning
// more than one aggregate of the bakery.
//
// The package includes:
//   - AssignmentEngine: binds main and junior bakers to an order
//   - PromotionPolicy: eligibility and resolution of baker applications
//
// Both services are pure: they read and mutate the aggregates handed to them
// and leave loading, persisting and notifying to the application layer.
package services
