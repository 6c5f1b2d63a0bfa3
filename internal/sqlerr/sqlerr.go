// Package sqlerr turns database driver errors into client-facing errors.
//
// Postgres reports failures as SQLSTATE codes; this package classifies
// them (unique, foreign key, not null, check violations) and builds
// errs.HTTPError values with stable machine codes such as
// USER_ALREADY_EXISTS and messages like "A user with this login already exists".
package sqlerr
