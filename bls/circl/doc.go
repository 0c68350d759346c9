// Package circl provides an alternate BLS12-381 backend for the [bls]
// wrappers, built on Cloudflare's circl.
//
// It exists alongside the gnark backend to keep the wrappers honest: circl
// stores points projectively while gnark stores them affinely, yet keys
// decoded by either backend serialize, compare, hash and commit identically.
package circl
