// Package domain defines the core types for test file representation and smell reporting.
package domain

// Language represents a programming language.
type Language string

// Supported languages for test file parsing.
const (
	LanguageJavaScript Language = "javascript"
	LanguageTSX        Language = "tsx"
	LanguageTypeScript Language = "typescript"
)
