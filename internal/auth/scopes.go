package auth

// ServiceScopes maps service names to their full-access OAuth scopes.
var ServiceScopes = map[string][]string{
	"sheets": {
		"https://www.googleapis.com/auth/spreadsheets",
	},
	"drive": {
		"https://www.googleapis.com/auth/drive",
		"https://www.googleapis.com/auth/drive.file",
	},
}

// ReadOnlyScopes maps service names to their read-only OAuth scopes.
// Used when read-only mode is set.
var ReadOnlyScopes = map[string][]string{
	"sheets": {
		"https://www.googleapis.com/auth/spreadsheets.readonly",
	},
	"drive": {
		"https://www.googleapis.com/auth/drive.readonly",
	},
}

// serviceOrder fixes scope order when no services are named, so requested
// scopes are stable across runs.
var serviceOrder = []string{"sheets", "drive"}

// AllScopes returns the combined set of scopes for the given services and mode.
// An empty service list means every service.
func AllScopes(services []string, readOnly bool) []string {
	scopeMap := ServiceScopes
	if readOnly {
		scopeMap = ReadOnlyScopes
	}
	if len(services) == 0 {
		services = serviceOrder
	}

	seen := make(map[string]bool)
	var scopes []string
	for _, svc := range services {
		for _, s := range scopeMap[svc] {
			if !seen[s] {
				scopes = append(scopes, s)
				seen[s] = true
			}
		}
	}
	return scopes
}
