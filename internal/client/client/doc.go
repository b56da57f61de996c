// Package client contains the transport layer of the firemap CLI.
//
// # Overview
//
//  1. A transport-agnostic contract (see the Client interface) covering
//     accounts, buildings, the floor layout editor, gallery and FAQ.
//  2. HTTPClient, a net/http implementation speaking JSON and multipart to
//     the REST API. Authenticated calls take their bearer token from a
//     TokenSource; a missing session fails before any request is sent.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) that opens
//     the SQLite session database and applies embedded goose migrations.
//
// # Error Handling
//
// Failures are mapped to sentinel errors that callers match with errors.Is:
// ErrUnavailable (network failure, timeout, 5xx), ErrUnauthorized (401/403)
// and ErrRejected (any other refusal, carried by *APIError with the server's
// message). Nothing is retried.
package client
