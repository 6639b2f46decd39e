// Package driver models the append-only driver location ledger.
//
// A driver has no mutable state of its own. Every location post or status
// change appends a LocationRecord, and the record with the greatest
// timestamp determines where the driver is and whether it is IDLE or
// OCCUPIED. A status change therefore requires at least one earlier record
// to take the position from.
package driver
