// Package client talks to the recipe backend and owns the local database
// bootstrap of the terminal client.
//
// # Overview
//
// The package provides:
//  1. The Client interface, the one contract every controller uses to reach
//     the backend (auth, profile, recipes, sharing, favorites, tags and
//     categories).
//  2. HTTPClient, a JSON-over-HTTP implementation that attaches the bearer
//     token, removes the {success, message, data} envelope and turns every
//     failure into an *Error.
//  3. InitDatabase and RunMigrations, which open the SQLite file and apply
//     the embedded goose migrations.
//
// # Error Handling
//
// *Error carries a Kind (network, unauthorized, validation, http). It
// matches the sentinels ErrUnavailable, ErrUnauthorized and ErrValidation
// with errors.Is. Validation errors keep the field→messages map in the order
// the server sent it; Summary returns the first field's first message.
//
// A 401 response runs the installed UnauthorizedPolicy before the error is
// returned. ClearTokenAndRedirect is the usual policy.
//
// Requests are never retried.
package client
