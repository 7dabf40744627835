// Package storage saves recorded runs to disk and reads them back.
//
// Each run lives in its own directory under the store's base directory:
//
//	metadata.json  run parameters and final metrics
//	letters.csv    one row per letter per recorded tick
//	impacts.csv    one row per impact
package storage
