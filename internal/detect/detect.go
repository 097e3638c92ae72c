// Package detect classifies raw message text for scam intent.
package detect

import "strings"

// Keywords is the fixed scam vocabulary. The activation check and the
// extractor's keyword-hit logging both run against this exact set; the two
// call sites must never diverge in matching semantics.
var Keywords = []string{
	"blocked", "verify", "urgent", "suspend",
	"upi", "otp", "kyc", "account", "immediately",
}

// IsScamSignal reports whether text contains any scam keyword as a
// case-insensitive substring.
func IsScamSignal(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
