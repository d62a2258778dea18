// Package form is the terminal surface of the property editor. Render draws
// an edit session as text, and Prompter runs it as an interactive form whose
// Save and Cancel buttons commit or discard the session.
package form
