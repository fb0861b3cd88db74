// Package key defines the closed set of primary key shapes and the lightweight
// identifier projection used to reference an entity without loading it.
//
// The package has no internal imports; every other internal package may
// depend on it.
//
// Key design constraints:
//   - PrimaryKey is sealed: only the variants declared here implement it
//   - Every variant serializes with its tag, {"Int32":42}, so a decoded key
//     has the same shape as the one that was encoded
//   - Keys are immutable values; the record that embeds one owns it
package key
