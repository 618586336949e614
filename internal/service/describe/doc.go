// Package describe prints every git component and the version each format
// and the file source would produce, as a table.
package describe
