// Package core provides the business logic for the menu manager.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support
// reference. Error codes are grouped by category:
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL001 - Required field: One or more required fields are empty
//	         Action: Fill in all fields marked with *
//	         Patterns: "required field"
//
//	VAL002 - Invalid price: Price is not a non-negative number
//	         Action: Enter a price such as 12.50
//	         Patterns: "invalid price"
//
//	VAL003 - Invalid category: Category is not on the menu
//	         Action: Pick one of the listed categories
//	         Patterns: "invalid category"
//
//	VAL004 - Invalid stock status
//	         Action: Use instock, outofstock or onbackorder
//	         Patterns: "invalid stock"
//
//	VAL005 - Invalid add-ons
//	         Action: Use none, protein or cheesesteak
//	         Patterns: "invalid addons"
//
//	VAL006 - Missing column: Import file lacks a required column
//	         Action: Download the import template and compare headers
//	         Patterns: "missing required column"
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large     Patterns: "file too large"
//	FILE002 - Invalid CSV        Patterns: "invalid csv", "parse error"
//	FILE003 - Empty file         Patterns: "empty file"
//	FILE004 - No file            Patterns: "no file provided"
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Request cancelled   Patterns: "context canceled"
//	REQ002 - Request timed out   Patterns: "context deadline exceeded"
//	REQ003 - Invalid request     Patterns: "invalid request body"
//
// # Rate Limiting and Auth
//
//	RATE001 - Too many requests  Patterns: "rate limit"
//	RATE002 - Import queue full  Patterns: "too many concurrent imports"
//	AUTH001 - Missing API key    Patterns: "missing api key"
//	AUTH002 - Invalid API key    Patterns: "invalid api key"
//
// # Default Error (ERR000)
//
// Fallback when no pattern matches. Check the application logs for the
// original technical error.
//
// # Pattern Matching
//
// Patterns are matched case-insensitively using strings.Contains. The first
// matching pattern wins, so more specific patterns come first.
package core

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error patterns (case-insensitive) to user messages.
var errorPatterns = []errorPattern{
	// =========================================================================
	// Validation Errors (VAL001-VAL006)
	// =========================================================================
	{
		pattern: "required field",
		msg: UserMessage{
			Message: "Please fill in all required fields",
			Action:  "Fill in all fields marked with *",
			Code:    "VAL001",
		},
	},
	{
		pattern: "invalid price",
		msg: UserMessage{
			Message: "Price must be a number of zero or more",
			Action:  "Enter a price such as 12.50",
			Code:    "VAL002",
		},
	},
	{
		pattern: "invalid category",
		msg: UserMessage{
			Message: "Category is not on the menu",
			Action:  "Pick one of the listed categories",
			Code:    "VAL003",
		},
	},
	{
		pattern: "invalid stock",
		msg: UserMessage{
			Message: "Stock status is not recognised",
			Action:  "Use instock, outofstock or onbackorder",
			Code:    "VAL004",
		},
	},
	{
		pattern: "invalid addons",
		msg: UserMessage{
			Message: "Add-on option is not recognised",
			Action:  "Use none, protein or cheesesteak",
			Code:    "VAL005",
		},
	},
	{
		pattern: "missing required column",
		msg: UserMessage{
			Message: "Required column is missing from CSV",
			Action:  "Download the import template and compare headers",
			Code:    "VAL006",
		},
	},

	// =========================================================================
	// File Errors (FILE001-FILE004)
	// =========================================================================
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds maximum size limit",
			Action:  "Split the file into smaller chunks",
			Code:    "FILE001",
		},
	},
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "File is not a valid CSV",
			Action:  "Ensure file is comma-separated with consistent columns",
			Code:    "FILE002",
		},
	},
	{
		pattern: "parse error",
		msg: UserMessage{
			Message: "File is not a valid CSV",
			Action:  "Ensure file is comma-separated with consistent columns",
			Code:    "FILE002",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The uploaded file is empty",
			Action:  "Please upload a CSV file with a header and data rows",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Please select a CSV file to import",
			Code:    "FILE004",
		},
	},

	// =========================================================================
	// Request Errors (REQ001-REQ003)
	// =========================================================================
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a smaller file or try again later",
			Code:    "REQ002",
		},
	},
	{
		pattern: "invalid request body",
		msg: UserMessage{
			Message: "Request body could not be read",
			Action:  "Send a JSON object with the item fields",
			Code:    "REQ003",
		},
	},

	// =========================================================================
	// Rate Limiting and Auth
	// =========================================================================
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
	{
		pattern: "too many concurrent imports",
		msg: UserMessage{
			Message: "Other imports are still running",
			Action:  "Wait a few seconds and upload again",
			Code:    "RATE002",
		},
	},
	{
		pattern: "missing api key",
		msg: UserMessage{
			Message: "API key required",
			Action:  "Send your key in the X-API-Key header",
			Code:    "AUTH001",
		},
	},
	{
		pattern: "invalid api key",
		msg: UserMessage{
			Message: "API key not accepted",
			Action:  "Check the key with your administrator",
			Code:    "AUTH002",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// If no pattern matches, the ERR000 fallback is returned.
//
// Example:
//
//	msg := MapError(errors.New("Price: invalid price \"abc\""))
//	// msg.Code == "VAL002"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display:
// "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a known pattern rather than
// the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
