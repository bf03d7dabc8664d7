// Package derive turns a ledger snapshot into derived financial state: loan
// balances, salary slips, production statuses, alerts and dashboard figures.
//
// Every function is pure. Nothing here mutates the snapshot, performs I/O or
// fails because of a dangling reference; missing weavers and designs render
// as models.Placeholder.
package derive
