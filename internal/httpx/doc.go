// Package httpx is the small HTTP helper shared by the table bridge client.
// It resolves paths against a base URL, applies default headers and turns
// non-2xx responses into HTTPError values. It never retries.
package httpx
