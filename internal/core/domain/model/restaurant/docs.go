// Package restaurant holds the catalog side of ordering: the Restaurant that
// receives orders and the Product it sells. The catalog is maintained outside
// this service, so both types are only restored from storage; the one write
// made here is the restaurant's average service time.
package restaurant
