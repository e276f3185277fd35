// Package kernel provides the primitives shared by the order management domain.
//
// The package includes:
//   - Actor: the authenticated user acting on an order, with a Role
//   - Clock: the time source used for lifecycle timestamps and day boundaries
//
// Authentication itself happens upstream; the domain only receives an Actor
// built through NewActor and trusts it.
package kernel
