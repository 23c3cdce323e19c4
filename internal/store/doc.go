// Package store defines the persistence interfaces for domain entities and the
// transaction helpers used to compose multi-entity operations. Implementations
// live under internal/platform; services depend only on the interfaces and
// sentinel errors declared here.
package store
