// Package canon provides canonical JSON encoding and content digests for
// dispatch traces.
//
// Canonical form follows RFC 8785 for the subset of JSON that traces use:
//   - Object keys sorted by UTF-16 code units (not UTF-8 bytes)
//   - No HTML escaping (< > & are literal)
//   - Strings NFC normalized at the serialization boundary
//   - No floats and no null
//
// Two traversals that visit the same nodes in the same order produce the
// same bytes, and therefore the same Digest.
package canon
