// Package render assembles loader outcomes and route matches into the
// serializable context consumed by the server entry's render function
// and mirrored to the client as an inline script payload.
//
// The projections (GlobalData, RouteData, RouteManifest, RouteParams)
// are pure and total: given well-formed matches and results they never
// fail, and their maps compare order-independently.
package render
