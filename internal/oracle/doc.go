// Package oracle regenerates fixture tables.
//
// For every fixture the catalogue knows how to evaluate, each row's arguments
// are parsed at the working precision, evaluated and the expectedresult cell is
// replaced with the result rendered to the output precision. Rows whose
// expectedresult already holds NaN, Infinity or -Infinity are copied through.
// Evaluation failures become NaN for that row only. Unknown and unsupported
// fixtures are skipped and left untouched.
//
// Fixtures are processed concurrently by a bounded pool. A fixture whose
// regenerated content hashes to the digest of what was read is not rewritten.
package oracle
