// Package status renders the session overview printed by `das status`.
//
// Styles come from an embedded styles.yaml with light and dark variants
// for every color. Color is used only when UseColor allows it; otherwise
// the renderer falls back to plain text so output stays readable in pipes
// and logs.
package status
