package repository

import "errors"

// ErrNotFound is the repository-level sentinel returned when a query for a
// single entity finds no rows. The service layer translates it into a domain
// error, keeping business logic decoupled from sql.ErrNoRows and friends.
var ErrNotFound = errors.New("repository: not found")
