// Package jobtrack provides the client side toolkit of the JobTrack job
// application tracker: a single bearer token kept in persistent storage, an
// HTTP client that authorizes requests with it, and display helpers.
//
// Token storage:
//   - TokenStore holds at most one token under the "token" key of a Storage.
//     MemoryStorage, FileStorage and the bun backed repository.Storage are
//     interchangeable backends.
//
// Authorized requests:
//   - Client.Fetch sends Content-Type: application/json and, when a token is
//     stored, Authorization: Bearer <token>. Caller headers win. A 401 clears
//     the token, sends the Navigator to the login path and returns
//     ErrAuthExpired; transport failures return ErrNetwork. Every other
//     response is handed back untouched.
//
// Display helpers:
//   - FormatDate renders "Mar 5, 2024", FormatCurrency renders "$1,500" and
//     StatusClass maps application statuses to CSS classes. TemplateHelpers
//     and RegisterTemplateFilters expose them to pongo2 templates.
//
// Application wiring:
//   - App builds everything from a Config and exposes it as Utils. The host
//     calls OnReady once its UI layer is up, which registers the shared
//     AuthStore under "auth" in a StoreRegistry.
package jobtrack
