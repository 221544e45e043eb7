// Package errs provides the error taxonomy shared by the storefront core
// and its adapters.
//
// Every error type pairs a sentinel with a struct carrying details:
//   - ErrValueIsRequired, ErrValueIsInvalid, ErrValueIsOutOfRange: validation
//     failures raised before any storage call (non-positive total price,
//     unknown order status literal, missing customer id).
//   - ErrObjectNotFound: an order, cart or customer lookup matched nothing.
//   - ErrObjectAlreadyExists: a uniqueness rule was violated.
//   - ErrVersionIsInvalid: a compare-and-set write observed a concurrent change.
//   - ErrUnauthorized, ErrForbidden: authentication and authorization failures.
//
// Struct errors unwrap to their sentinel, so callers classify with errors.Is
// and extract details with errors.As. The HTTP adapter maps each family to a
// status code; nothing in the core recovers from them silently.
package errs
