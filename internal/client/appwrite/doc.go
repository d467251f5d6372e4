// Package appwrite is a thin REST adapter for the parts of the Appwrite API
// the ReState client consumes.
//
// # Overview
//
//  1. Account: OAuth2 token URL, token→session exchange, session listing and
//     deletion, the current account and account JWTs.
//  2. Avatars: initials-avatar URLs (built client side, never fetched).
//  3. Databases: document listing with JSON queries and single-document reads.
//
// A Client is one process-wide handle. It carries the session implicitly:
// cookies go through a cookie jar and, like the React Native SDK, the
// X-Fallback-Cookies header is echoed back on every request and optionally
// persisted through a CookieStore.
//
// # Error Handling
//
// Every failure leaving this package is an *Error with a closed Kind
// (KindUnauthorized, KindNotFound, KindNetwork, KindUnknown). Callers switch
// on KindOf(err) or match the sentinels ErrUnauthorized, ErrNotFound and
// ErrUnavailable with errors.Is.
package appwrite
