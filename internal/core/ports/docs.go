// Package ports declares the interfaces between the cafe delivery core and
// its adapters: repositories, the unit of work, authorization, cart and cafe
// lookups, the clock and the event producer.
package ports
