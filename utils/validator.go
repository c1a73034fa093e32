// utils/validator.go - Input validation
package utils

import (
	"mime/multipart"
	"regexp"
	"strings"
)

// Manuscript field bounds.
const (
	MaxTitleLength    = 200
	MaxAbstractWords  = 500
	MinKeywords       = 3
	MaxKeywords       = 10
	MaxManuscriptSize = int64(10 * 1024 * 1024) // 10 MiB
)

// ValidateEmail checks if email is valid
func ValidateEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

// ValidatePassword checks password strength
func ValidatePassword(password string) (bool, string) {
	if len(password) < 8 {
		return false, "Password must be at least 8 characters"
	}

	return true, ""
}

// SanitizeInput removes potentially harmful characters
func SanitizeInput(input string) string {
	// Remove leading/trailing spaces
	input = strings.TrimSpace(input)

	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	return input
}

// CountWords counts whitespace-separated words.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// ValidateTitle checks the manuscript title bounds.
func ValidateTitle(title string) (bool, string) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return false, "Title is required"
	}
	if len(trimmed) > MaxTitleLength {
		return false, "Title must not exceed 200 characters"
	}
	return true, ""
}

// ValidateAbstract checks the abstract word count bound.
func ValidateAbstract(abstract string) (bool, string) {
	if strings.TrimSpace(abstract) == "" {
		return false, "Abstract is required"
	}
	if CountWords(abstract) > MaxAbstractWords {
		return false, "Abstract must not exceed 500 words"
	}
	return true, ""
}

// ValidateKeywords checks the keyword count bounds, dropping blank entries.
func ValidateKeywords(keywords []string) ([]string, bool, string) {
	cleaned := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		trimmed := strings.TrimSpace(kw)
		if trimmed == "" {
			continue
		}
		cleaned = append(cleaned, trimmed)
	}

	if len(cleaned) < MinKeywords {
		return cleaned, false, "At least 3 keywords are required"
	}
	if len(cleaned) > MaxKeywords {
		return cleaned, false, "At most 10 keywords are allowed"
	}
	return cleaned, true, ""
}

// ValidateManuscriptFile checks the upload constraints before anything is
// written to storage: MIME type application/pdf, size at most 10 MiB.
func ValidateManuscriptFile(file *multipart.FileHeader) (bool, string) {
	if file == nil {
		return false, "Manuscript file is required"
	}
	if file.Header.Get("Content-Type") != "application/pdf" {
		return false, "Invalid file type"
	}
	if file.Size > MaxManuscriptSize {
		return false, "File size exceeds 10MB limit"
	}
	return true, ""
}
