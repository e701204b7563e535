// Package bench holds the command-line plumbing shared by the matmulbench and
// nntrainbench commands: positional argument parsing, the result line
// formats, stderr diagnostics and the cobra command wiring.
//
// Stdout carries exactly one result line per successful run. Everything else
// goes to stderr.
package bench
