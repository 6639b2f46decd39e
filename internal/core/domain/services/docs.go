// Package services holds domain services of the cafe delivery system that
// span more than one aggregate.
//
// DriverDispatcher ranks idle drivers from the location ledger by haversine
// distance to a cafe; the AssignDriver use case uses the ranking to pick the
// nearest driver.
package services
