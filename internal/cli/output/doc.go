// Package output renders yggauth-cli results as tables, JSON or YAML.
//
// Commands hand a value to a Formatter chosen by the --output flag. Values
// that know how to lay themselves out implement Tabler; other structs are
// rendered as FIELD/VALUE rows.
package output
