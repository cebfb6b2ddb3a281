// Package testutil provides testing utilities for lshstore.
//
// This package is intended for use in tests only. Its centerpiece is
// Suite, a black-box contract test run against every storage backend so
// that the three implementations cannot drift apart:
//
//	testutil.Suite{
//	    Open: func(t *testing.T) lshstore.Store { ... },
//	    OrderedLists: true,
//	    SingleValue:  true,
//	}.Run(t)
package testutil
