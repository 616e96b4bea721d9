// Package watched persists the set of movies a user has already seen in
// SQLite and exposes it to the search pipeline as a snapshot of TMDB ids.
//
// Uniqueness of (user, movie) is enforced by check-before-insert rather than
// a database constraint, so Mark and Unmark are both idempotent. Schema
// changes bump the version in schema.go; users delete the database to adopt
// the new schema.
package watched
