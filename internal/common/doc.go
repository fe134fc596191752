// Package common provides shared constants used throughout the Juggler library.
//
// This package includes:
// - Domain separation tags for the hash oracle
// - Production parameter constants
//
// This is an internal package not intended for direct use by applications.
// It supports the implementation of the public packages.
package common
