// Package textareahost adapts a bubbles textarea into an assist.Editor.
//
// The adapter adds what the textarea lacks: a chroma-based tokenizer for the
// token under the cursor, a small completion list fed by a host Completer,
// an option table, and an event hub. Hosts forward key, focus, and mouse
// input through Model so the assist handlers see every event.
package textareahost
