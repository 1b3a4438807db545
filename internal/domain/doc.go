// Package domain defines core data models, error values and interfaces shared
// across the app. It contains plain types and contracts only.
package domain
