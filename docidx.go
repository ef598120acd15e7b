// Package docidx provides a compact, queryable index of API documentation
// items. An index is built once from raw item metadata, serialized next to the
// generated reference documentation, and loaded as an immutable value that
// answers name and path queries without a server round trip.
//
// This package contains domain types, the query engine and interfaces
// following Ben Johnson's Standard Package Layout. Implementations of
// external concerns live in subdirectories named after their primary
// dependency (e.g., sqlite/, bloom/, goquery/).
package docidx
