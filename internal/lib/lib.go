// Package lib groups the libraries that do not belong to a single layer.
//
// It contains shared utilities, translation resolution, token signing,
// background job processing (Redis/Asynq) and the Resend email client.
package lib
