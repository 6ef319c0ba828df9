package utils

import (
	"log"
	"strings"
)

var logLineReplacer = strings.NewReplacer("\r", " ", "\n", " ")

// LogEvent prints a [MODULE] action=... request_id=... msg=... line.
// Messages may carry driver errors, so line breaks are flattened. Never pass
// credentials or tokens.
func LogEvent(requestID, module, action, message string) {
	log.Print(FormatEvent(requestID, module, action, message))
}

func FormatEvent(requestID, module, action, message string) string {
	req := strings.TrimSpace(requestID)
	if req == "" {
		req = "-"
	}
	return "[" + strings.ToUpper(module) + "] action=" + action + " request_id=" + req + " msg=" + logLineReplacer.Replace(message)
}
