// Package printing turns receipts and financial reports into PDF files. The
// documents are laid out as HTML with html/template and printed by headless
// Chrome through the DevTools protocol.
package printing
