// Package annotation defines lint findings as produced by an external lint
// engine, and the error-only views the reconciler compares.
//
// Annotations are opaque comparable values: nothing here validates messages or
// ranges, it only filters, orders, and compares them.
package annotation
