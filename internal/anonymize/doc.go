// Package anonymize converts sensitive contribution text into deterministic,
// structure-preserving hash tokens.
//
// The hashing is deliberately unsalted: downstream consumers rely on the same
// input producing the same token across independent runs. It is a privacy
// convenience, not a cryptographic guarantee.
package anonymize
