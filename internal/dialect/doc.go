// Package dialect detects "foreign language" signals in source that was
// handed to the checker as C: a beginner pasting Python, C++, Java or
// JavaScript into a .c file gets one targeted hint instead of a wall of
// unrelated syntax errors.
//
// Evidence collection is non-invasive: it must never change lexing or
// parsing behavior, and the hint diagnostics built from it are always
// optional extras on top of the real errors.
package dialect
