// Package middleware groups the HTTP middleware of the admin API.
//
// # Components
//
//   - auth: API key validation protecting every admin route.
//   - rayid: a unique Request ID (RayID) for every incoming request, stored in the
//     context for logger.WithRayID and echoed in the X-Ray-ID response header.
//
// RayID is registered first so that even rejected requests are traceable.
package middleware
