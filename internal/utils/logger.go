package utils

import (
	"log"
	"strings"
)

// LogEvent writes one line per domain action (auth, booking, message, ...).
// Messages should stay short and carry ids, never user content or credentials.
func LogEvent(requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	if req == "" {
		req = "-"
	}
	log.Printf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(module), action, req, message)
}
