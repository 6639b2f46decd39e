// Package kernel holds the value objects shared by every aggregate of the cafe
// delivery domain:
//   - UUID: identifiers of orders, cafes, customers and drivers
//   - Location: a validated latitude/longitude pair
//   - DistanceKm: haversine great-circle distance used for driver dispatch
//
// Value objects are immutable and their zero values fail validation.
package kernel
