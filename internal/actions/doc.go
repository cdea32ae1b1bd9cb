// Package actions implements the asynchronous commands that talk to the
// backend REST API.
//
// Every action follows the same protocol:
//   - emit a Pending signal;
//   - perform exactly one HTTP request against BASE_URL/api/v1/...;
//   - emit Success carrying the response's "message" field, or Failure
//     carrying a message extracted from the error response.
//
// Failures never escape as panics or returned errors. They are normalized
// into a Failure signal and a Result whose Err field keeps the typed cause
// (*ServerRejection, *TransportFailure, or a local auth error). There are no
// retries; calling the action again is up to the caller.
package actions
