// Package assist wires lint-notice reconciliation, completion triggering, and
// escape-then-tab focus handling onto an externally supplied code editor.
//
// The editor is any value implementing Editor. Hosts create instances through
// a Registry they own, route Bubble Tea messages to Registry.Update, and feed
// editor events through the editor's subscription hub. All handlers run on the
// Bubble Tea event loop; nothing here is safe for concurrent use.
package assist
