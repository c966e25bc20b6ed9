// Package deploy publishes a built single-page app to a hosting target.
//
// A Publisher takes the build output directory plus the generated route
// manifest and writes both to the target. For every static route, the
// app shell (index.html) is duplicated at <route>/index.html so dumb
// static hosts serve deep links without rewrite rules; parameterized
// and catch-all routes still need the host's SPA fallback.
//
// Two publishers ship with Wayfind: DiskPublisher for local or
// volume-mounted hosting, and S3Publisher for object storage.
package deploy
