// Package lib holds modules that do not fit strictly into the layered
// packages.
//
// It contains access token handling, local image storage, background job
// processing (Redis/Asynq), the email client (Resend) and small helpers.
package lib
