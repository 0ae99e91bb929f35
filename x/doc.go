/*
Package x contains interfaces shared by the extension packages that
live below it. Extensions should accept these interfaces in their
constructors rather than concrete implementations, so authentication
and asset movement can be swapped without touching handler logic.
*/
package x
