// Package services holds the application services the CLI drives: accounts,
// buildings, the per-floor gallery and the FAQ. Each service validates its
// input, calls the remote API and keeps the session and caches in step.
package services
