// Package config loads and validates the framework configuration.
//
// The on-disk remix.config.json carries directories, the public asset
// path and the dev server port. Routes and loaders are Go code, so the
// route tree comes from a definer function supplied by the application;
// the Loader re-invokes it on every Read, which live mode calls once
// per request so edits to route definitions take effect immediately.
package config
