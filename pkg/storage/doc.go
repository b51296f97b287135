// Package storage provides persistent storage for Maaqo.
// It uses BadgerDB as the embedded database and exposes a small key-value
// interface so the rest of the application can run against an in-memory
// store in tests.
package storage
