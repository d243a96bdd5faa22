// Package barter prices informal item-for-item trades against a value table
// and finds items of similar value.
//
// Everything here is a pure function of its arguments: the value table is
// passed in by the caller and never modified, and no state is kept between calls.
package barter
