// Package build resolves build artifacts - the browser manifest, the
// server entry module and the route modules - behind one interface with
// a precompiled and a live variant.
//
// Precompiled resolution reads the manifest from a fixed on-disk layout
// (or a remote source such as S3) exactly once and serves read-only
// caches for the process lifetime. Live resolution fetches a freshly
// built manifest from the dev build server on every request, rebuilding
// only the currently matched routes, and replaces the module cache
// wholesale at the top of each request. The dispatcher is agnostic to
// which variant it holds.
package build
