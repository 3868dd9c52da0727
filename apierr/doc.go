// Package apierr collapses every failure mode the provider or the network
// can produce into one canonical enriched error envelope.
//
// Classification is a closed decision tree over the error's shape: a
// framework HTTPError passes through untouched, typed provider SDK errors
// sub-classify by status semantics, bare network failures match a fixed code
// enum, and everything else lands in the unknown branch so no error is ever
// swallowed. The classifier never retries; it only enriches and signals
// retryability through retry_after_seconds and the Retry-After header.
// Every classified error is logged exactly once with the original error
// preserved.
package apierr
