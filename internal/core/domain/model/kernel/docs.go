// Package kernel holds value objects shared by the storefront aggregates.
//
//   - UUID: the storage identifier carried by persisted documents (`_id`)
//   - LineItem: a product snapshot with price and quantity, used by both
//     orders and carts
package kernel
