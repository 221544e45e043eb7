// Package customer provides the registered Customer aggregate: identity,
// login email, password hash and optional GST billing details.
//
// Customers are addressed by an 8-character Code (A-Z, 0-9) that is handed
// to the client at registration and used as the customer_id of their orders
// and cart.
package customer
