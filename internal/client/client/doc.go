// Package client contains the transport and bootstrap building blocks of the
// book review client.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) covering
//     accounts, the paginated review collection, statistics and catalog search.
//  2. A concrete REST/JSON implementation (see HTTPClient) that unwraps the
//     {status,error,data} envelope, injects the bearer credential through a
//     round tripper fed by a TokenSource, tags requests with an X-Request-ID
//     and rate limits catalog searches.
//  3. Local persistence bootstrap utilities (InitDatabase, RunMigrations)
//     wiring an sqlite database and applying embedded goose migrations.
//
// # Error Handling
//
// Failures are reported as:
//   - ErrUnauthorized: the server rejected (or required) the credential (HTTP 401).
//     The concrete error is a 401 *APIError carrying the server text.
//   - *APIError: any other non-2xx response; Message is the server's text.
//   - ErrUnavailable: the request never got a response.
//   - ErrBadResponse: a 2xx response whose body could not be decoded.
//
// Match sentinels with errors.Is and APIError with errors.As.
package client
