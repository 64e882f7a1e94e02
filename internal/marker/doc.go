// Package marker flags lines of a text file that appear in a reference list.
//
// A referenced line is re-emitted as "<token> <original line>", terminator
// included. Lines that already start with the token (case-insensitive, after
// optional whitespace) are left alone, so marking is idempotent. The whole
// output is built in memory before any destination is touched.
package marker
