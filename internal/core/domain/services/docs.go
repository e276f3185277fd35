// Package services provides domain services for rules that span the Order
// aggregate and the restaurant catalog.
//
// The package includes:
//   - OrderAccessGuard: decides which actor may read or change an order
//   - ServiceTimeEstimator: summarizes delivered orders into a restaurant's
//     average service time, with MeanServiceTime and EWMAServiceTime strategies
package services
