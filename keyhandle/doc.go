// Package keyhandle defines the opaque identifiers handed out for keyframes
// and the generators that mint them.
//
// A KeyHandle has no ordering semantics. It is only a lookup key, and the
// zero value is never issued so it can stand for "no handle".
//
// Curves take a Generator through their options. When none is given the
// process wide Default generator is used, which is a Sequential generator
// unless SetDefault replaced it.
package keyhandle
