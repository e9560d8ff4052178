// Package syntax turns a line of shell input into a command tree.
//
// Loosely modeled after the POSIX shell command language
// (https://pubs.opengroup.org/onlinepubs/9699919799/utilities/V3_chap02.html)
// but deliberately much smaller:
//
// 1. The lexer breaks the input into tokens: words, quoted strings,
// operators and redirection markers; see Token Recognition.
//
// 2. The parser folds tokens into simple commands and binary
// combinations (pipelines, logical chains, sequencing, backgrounding)
// by precedence climbing.
//
// There is no expansion step: no variables, globbing or command
// substitution. Redirections stay attached to their simple command and
// are interpreted at execution time.
package syntax
