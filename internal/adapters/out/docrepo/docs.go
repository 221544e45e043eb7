// Package docrepo groups the aggregate repositories built on
// ports.DocumentStore. Each subpackage owns one collection, a JSON-tagged DTO
// describing its document shape, and the mapping to and from the domain.
package docrepo
