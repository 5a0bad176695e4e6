// Package models defines the persisted domain records for SplitBetter.
//
// # Models
//
//   - Split: a trip or event shared by a fixed set of participants, with a
//     currency and a budget
//   - Expense: one spend or settlement transfer inside a split
//
// Participants are opaque identifiers (strings). Balances, shares and
// settlement instructions are never stored; they are recomputed from the
// full expense history by the calculator package on every read.
//
// # Conversion
//
// Expenses are always stored in the split's currency. When an expense was
// entered in another currency the original amount, currency and the rate
// used are kept alongside for display.
package models
