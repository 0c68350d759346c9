// Package registry keeps the set of validator public keys a signing client
// knows about and commits to it with a single tree-hash root.
//
// The registry is written against the narrow [Key] interface: canonical
// bytes, hex form, hash and tree root. It is the shape every outer
// collaborator (control-plane API, storage, networking) should take: keys
// are compared and indexed only through their canonical encoding, never
// through backend point internals.
//
// Untrusted input enters through [Registry.AddBytes], [Registry.AddHex] or
// [Store.Load], which all run the backend's validating decoder. Rejected
// input is returned as the backend's typed decode error, counted, and
// logged; the caller decides whether that is fatal.
package registry
