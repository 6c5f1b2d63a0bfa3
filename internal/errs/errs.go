// Package errs defines the error shapes returned to API clients.
//
// Every failure leaving the HTTP layer is rendered from an HTTPError so
// clients always get the same JSON body: a machine code, a message, the
// status, optional field-level errors and an optional client action.
package errs
