// Package colour converts between hex and HSL colour notations for the
// theme editor's colour fields.
//
// Every conversion is total: malformed input degrades to a fixed fallback
// instead of returning an error, so a half-typed value in a field never blocks
// the editor. Use IsValidHex to decide whether a value may be committed.
package colour
