package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Routing Errors (E001-E019)
	// ============================================

	"E001": {
		Category: CategoryRouting,
		Message:  "Invalid route pattern",
		Detail:   "The route pattern could not be compiled. Segments are literals, \":name\" parameters, or a final \"*\" catch-all.",
		DocURL:   "https://wayfind.dev/docs/errors/E001",
	},
	"E002": {
		Category: CategoryRouting,
		Message:  "Duplicate route",
		Detail:   "Two route patterns resolve to the same shape. Patterns that differ only in parameter names or trailing slashes are the same route.",
		DocURL:   "https://wayfind.dev/docs/errors/E002",
	},
	"E003": {
		Category: CategoryRouting,
		Message:  "Route not found",
		Detail:   "No registered route matches the requested path.",
		DocURL:   "https://wayfind.dev/docs/errors/E003",
	},
	"E004": {
		Category: CategoryRouting,
		Message:  "Route table frozen",
		Detail:   "Routes cannot be registered after the first resolution. Register all routes before navigating.",
		DocURL:   "https://wayfind.dev/docs/errors/E004",
	},
	"E005": {
		Category: CategoryRouting,
		Message:  "Route parameter type mismatch",
		Detail:   "A route parameter couldn't be converted to the expected type.",
		DocURL:   "https://wayfind.dev/docs/errors/E005",
	},
	"E006": {
		Category: CategoryRouting,
		Message:  "Missing route parameter",
		Detail:   "A required route parameter was not provided.",
		DocURL:   "https://wayfind.dev/docs/errors/E006",
	},
	"E007": {
		Category: CategoryRouting,
		Message:  "Page handler failed",
		Detail:   "The page handler returned an error and no error boundary was configured for the route.",
		DocURL:   "https://wayfind.dev/docs/errors/E007",
	},

	// ============================================
	// Configuration Errors (E020-E039)
	// ============================================

	"E020": {
		Category: CategoryConfig,
		Message:  "Invalid wayfind.json",
		Detail:   "The wayfind.json configuration file is malformed.",
		DocURL:   "https://wayfind.dev/docs/errors/E020",
	},
	"E021": {
		Category: CategoryConfig,
		Message:  "Missing required configuration",
		Detail:   "A required configuration value is not set.",
		DocURL:   "https://wayfind.dev/docs/errors/E021",
	},
	"E022": {
		Category: CategoryConfig,
		Message:  "Invalid port number",
		Detail:   "The configured dev server port is outside the valid range.",
		DocURL:   "https://wayfind.dev/docs/errors/E022",
	},
	"E023": {
		Category: CategoryConfig,
		Message:  "Invalid deploy target",
		Detail:   "The deploy section must configure exactly one target: a local directory or an S3 bucket.",
		DocURL:   "https://wayfind.dev/docs/errors/E023",
	},
	"E024": {
		Category: CategoryConfig,
		Message:  "Invalid route entry",
		Detail:   "A route entry in wayfind.json is missing its pattern or page.",
		DocURL:   "https://wayfind.dev/docs/errors/E024",
	},

	// ============================================
	// Dev Server Errors (E040-E049)
	// ============================================

	"E040": {
		Category: CategoryServer,
		Message:  "WebSocket upgrade failed",
		Detail:   "The navigation state WebSocket connection could not be established.",
		DocURL:   "https://wayfind.dev/docs/errors/E040",
	},
	"E041": {
		Category: CategoryServer,
		Message:  "Dev server failed to start",
		Detail:   "The dev server could not bind its address. The port may be in use.",
		DocURL:   "https://wayfind.dev/docs/errors/E041",
	},
	"E042": {
		Category: CategoryServer,
		Message:  "Invalid navigation request",
		Detail:   "The navigation request body is malformed or names an invalid target path.",
		DocURL:   "https://wayfind.dev/docs/errors/E042",
	},

	// ============================================
	// Deploy Errors (E050-E059)
	// ============================================

	"E050": {
		Category: CategoryDeploy,
		Message:  "Build directory unusable",
		Detail:   "The build directory is empty or has no index.html app shell.",
		DocURL:   "https://wayfind.dev/docs/errors/E050",
	},
	"E051": {
		Category: CategoryDeploy,
		Message:  "Publish failed",
		Detail:   "Uploading the built app to the deploy target failed.",
		DocURL:   "https://wayfind.dev/docs/errors/E051",
	},
	"E052": {
		Category: CategoryDeploy,
		Message:  "AWS configuration failed",
		Detail:   "AWS credentials or region could not be loaded for the S3 deploy target.",
		DocURL:   "https://wayfind.dev/docs/errors/E052",
	},

	// ============================================
	// CLI Errors (E060-E069)
	// ============================================

	"E060": {
		Category: CategoryCLI,
		Message:  "Not a Wayfind project",
		Detail:   "The current directory is not a Wayfind project. Run this command from a directory with wayfind.json.",
		DocURL:   "https://wayfind.dev/docs/errors/E060",
	},
	"E061": {
		Category: CategoryCLI,
		Message:  "No deploy target configured",
		Detail:   "wayfind.json has no deploy section. Add a \"dir\" or \"s3\" target before deploying.",
		DocURL:   "https://wayfind.dev/docs/errors/E061",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
