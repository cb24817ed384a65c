// Package dev implements the development build server: it builds fresh
// browser manifests on demand for the routes a request actually
// matched, and broadcasts reload notifications to connected browsers
// over WebSocket when sources change.
package dev
