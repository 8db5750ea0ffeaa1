// Package http exposes the chart service over REST: one endpoint per
// chart kind returning a figure envelope, plus dataset and health
// endpoints. Requests are validated structs; failures render as
// structured API errors.
package http
