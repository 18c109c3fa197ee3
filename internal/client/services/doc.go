// Package services contains the application services of the book review
// client: the review collection controller, catalog search and account
// management.
//
// Every remote failure is turned into exactly one notification at the service
// boundary. A rejected credential always clears the session and raises the
// "please log in" notification, whichever service observed it; the returned
// error then matches ErrLoginRequired.
package services
