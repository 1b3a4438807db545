// Package crypto computes content digests used to compare stores.
package crypto
