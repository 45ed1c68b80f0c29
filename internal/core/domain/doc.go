// Package domain contains the core business entities and errors for retriva.
// It has no dependencies on adapters or external services.
package domain
