// Package order provides the Order aggregate of the storefront.
//
// The package includes:
//   - Order: the aggregate root, created once with a sequence-derived Number
//     and mutated only through status changes
//   - Number: the human-readable identifier, formatted ORD-NNNNNN
//   - Status: the lifecycle state machine
//
// Key business rules:
//   - total price must be greater than 0
//   - a new order starts in Pending
//   - status transitions are decided by a single table (CanTransitionTo);
//     every transition is currently allowed, including back to Pending
//   - updated_at is absent until the first status change
package order
