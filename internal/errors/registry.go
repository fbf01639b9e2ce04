package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Routing Errors (E001-E099)
	// ============================================

	"E001": {
		Category:   CategoryRouting,
		Message:    "Invalid URL segment pattern",
		Detail:     "A page segment contains a malformed parameter or an illegal character.",
		Suggestion: "Segments look like \"users\", \"{user_id}\" or \"{rest:path}\", with no leading slash.",
	},
	"E002": {
		Category:   CategoryRouting,
		Message:    "Redirect loop detected",
		Detail:     "Guards and redirects sent the navigation back to a URL it already visited.",
		Suggestion: "Make at least one guard in the loop return Stay() for some session state.",
	},
	"E003": {
		Category:   CategoryRouting,
		Message:    "Parameter type mismatch",
		Detail:     "A declared parameter type does not correspond to any parameter in the segment pattern.",
		Suggestion: "Only names that appear in the segment pattern can have a declared type.",
	},

	// ============================================
	// Protocol Errors (E100-E199)
	// ============================================

	"E100": {
		Category:   CategoryProtocol,
		Message:    "Malformed navigation frame",
		Detail:     "The client sent a frame that is not valid JSON or has an unknown type.",
		Suggestion: "Check that the client and server protocol versions match.",
	},
	"E101": {
		Category: CategoryProtocol,
		Message:  "Frame exceeds size limit",
		Detail:   "Navigation frames are capped at 64 KiB.",
	},

	// ============================================
	// Config Errors (E200-E299)
	// ============================================

	"E200": {
		Category:   CategoryConfig,
		Message:    "Cannot read verso.json",
		Suggestion: "Run the command from your project root, or pass --config.",
	},
	"E201": {
		Category:   CategoryConfig,
		Message:    "Invalid verso.json",
		Detail:     "The configuration file exists but a field has an invalid value.",
		Suggestion: "See the field name in the error detail for what to fix.",
	},
	"E202": {
		Category:   CategoryConfig,
		Message:    "Base URL must be absolute",
		Detail:     "The app base URL needs a scheme and host so the router can classify external links.",
		Suggestion: "Use a full URL like \"http://localhost:8080\" or \"https://example.com/app\".",
	},

	// ============================================
	// CLI Errors (E300-E399)
	// ============================================

	"E300": {
		Category:   CategoryCLI,
		Message:    "Project directory already exists",
		Suggestion: "Pick a different name or remove the existing directory.",
	},
	"E301": {
		Category:   CategoryCLI,
		Message:    "Invalid project name",
		Detail:     "Project names become Go module paths and directory names.",
		Suggestion: "Use lowercase letters, digits and dashes, starting with a letter.",
	},
}
