// Package froggi ties together the wire, request, response and markup
// packages into the client half of a froggi exchange: connect, send a
// Request, and read back a Response. The server half lives in
// cmd/froggi-server, since it additionally needs a page store and cache.
package froggi
