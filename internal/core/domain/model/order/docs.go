// Package order implements the Order aggregate of the cafe delivery domain
// and its status state machine.
//
// An order is placed from a single-cafe cart snapshot, starts PENDING and
// moves through ACCEPTED, READY and PICKED_UP to DELIVERED. PENDING orders
// may be DECLINED by the cafe and customers may cancel within a grace
// window. Drivers are attached while the order is ACCEPTED or READY.
package order
