// Package complete decides when a keystroke should open the editor's
// autocompletion list.
//
// The decision depends only on the token under the cursor, the language
// sub-mode active there, the text before the cursor, and the key that was
// released. The completion engine itself is external.
package complete
