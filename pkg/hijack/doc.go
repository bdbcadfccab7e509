// Package hijack rewrites a compiler or linker argument vector so that
// every recognised path goes through the alias farm.
//
// The Hijacker walks the arguments once, classifies each token with the
// rule table from package rules, creates aliases as it goes and yields the
// rewritten tokens lazily. Rewrite materialises the sequence and applies
// the length guard: no token may exceed the maximum argument length, since
// a long argument reaching the wrapped tool defeats the purpose of the
// rewrite.
package hijack
