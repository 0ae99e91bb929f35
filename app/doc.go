/*
Package app assembles the pieces of the framework into a runnable abci
application: a Router to dispatch messages to handlers, a decorator
chain wrapping the router, a CommitStore maintaining separate check and
deliver caches over the persistent store, and the BaseApp glue that
translates abci requests into Handler calls.
*/
package app
