// Package postgres provides PostgreSQL implementations of the store
// interfaces. All stores operate over store.DBTX so they work with either a
// connection pool or a transaction, and every database error is passed
// through MapError so callers see store sentinels instead of driver errors.
package postgres
