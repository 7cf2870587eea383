// Package order provides the Order aggregate and its status machine.
//
// The package includes:
//   - Order: the aggregate root holding customer, items, bakers and status
//   - Status: the lifecycle states and the transition table
//   - Item, DeliveryInfo, PaymentMethod: immutable parts captured at checkout
//   - StatusChange: the audit record of every transition
//
// Key business rules:
//   - Orders start Pending and move forward one state at a time:
//     Pending -> Assigned -> InProgress -> Completed -> ReadyForDelivery -> Delivered
//   - Cancelled is reachable from every open state; Delivered and Cancelled are terminal
//   - Requesting the current status again is a successful no-op
//   - Only the assigned bakers and admins change status; customers cancel
//     their own pending orders through CancelByCustomer
//   - A junior baker is never assigned without a main baker
package order
