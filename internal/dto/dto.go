// Package dto defines the request and response shapes of the HTTP API.
//
// Request types are bound by echo (path, query and body) and validated
// through validation.Validatable before a handler runs. Response types
// are explicit whitelists: they are built from model values by the
// New*Response constructors, which apply the output transforms
// (translation, base64, lap time padding, tires fallback). Only the
// fields declared on a response type are ever serialized.
//
// The `doc` struct tag feeds field descriptions into the OpenAPI document.
package dto
