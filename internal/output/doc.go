// Package output writes the results of a run: the attribute CSV, an
// optional Markdown summary and SQLite database, the error log of an
// unknown tool request, and the final permission change of the output tree.
package output
