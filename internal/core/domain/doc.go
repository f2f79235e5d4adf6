// Package domain contains the core business types for LegalEase: statutes,
// sections, chunk records and search results. It has no dependencies on
// infrastructure; adapters translate to and from these types at the edges.
package domain
