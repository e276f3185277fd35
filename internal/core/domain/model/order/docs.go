// Package order provides the Order aggregate and its lifecycle.
//
// The package includes:
//   - Order: the aggregate root holding the address, the product lines, the
//     computed price and the lifecycle timestamps
//   - ProductLine: a product, a quantity and the unit price snapshotted when
//     the line was priced
//   - Status: the lifecycle state derived from the timestamps
//
// Key business rules:
//   - The lifecycle is Pending -> InProcess -> Sent -> Delivered; Delivered is final
//   - Status is never stored; it is computed from startedAt, sentAt and deliveredAt
//   - deliveredAt set implies sentAt set, which implies startedAt set
//   - Address and product lines can only change while the order is Pending
//   - Only Pending orders can be deleted
//   - Price always equals the merchandise total plus the shipping cost applied
//     by the pricing rules
package order
