// Package conv provides checked integer conversions.
//
// The arena addresses slots with uint32 positions while Go sizes are int, and
// snapshot headers carry fixed-width counts read from untrusted input. Every
// narrowing conversion in the module goes through this package so that an
// out-of-range value becomes an error instead of a silent wrap.
package conv
