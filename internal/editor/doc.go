// Package editor implements the property editor: it turns a component's
// registered attributes into an edit session of text fields shaped like the
// attribute values, and writes the edited numbers back on confirmation.
//
// A session moves through three states. Open reads every registered
// attribute once and leaves the session Opened. Commit parses every text
// field; if any field is not a valid decimal number nothing is written, an
// *InvalidNumericInputError is returned and the session stays Opened so the
// caller can let the user correct it. Otherwise every attribute is replaced
// and the session becomes Committed. Discard moves the session to Discarded
// without touching the component. Committed and Discarded are terminal.
//
// Sessions are owned by a single caller and are not safe for concurrent use.
package editor
