// Package sanitize cleans submitted field values with bluemonday policies
// before they are written into template parameters.
package sanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Policy modes accepted in form definitions.
const (
	ModeNone   = ""
	ModeStrict = "strict"
	ModeUGC    = "ugc"
)

var (
	strictPolicyOnce sync.Once
	strictPolicy     *bluemonday.Policy

	ugcPolicyOnce sync.Once
	ugcPolicy     *bluemonday.Policy
)

// Valid reports whether mode names a known policy.
func Valid(mode string) bool {
	switch normalizeMode(mode) {
	case ModeNone, ModeStrict, ModeUGC:
		return true
	default:
		return false
	}
}

// Value applies the policy named by mode to raw. Unknown modes and the empty
// mode return raw unchanged.
func Value(mode, raw string) string {
	policy := policyFor(mode)
	if policy == nil || raw == "" {
		return raw
	}
	return policy.Sanitize(raw)
}

func policyFor(mode string) *bluemonday.Policy {
	switch normalizeMode(mode) {
	case ModeStrict:
		strictPolicyOnce.Do(func() {
			strictPolicy = bluemonday.StrictPolicy()
		})
		return strictPolicy
	case ModeUGC:
		ugcPolicyOnce.Do(func() {
			policy := bluemonday.UGCPolicy()
			// Translation markup survives user content cleaning.
			policy.AllowElements("translate", "noinclude", "includeonly", "onlyinclude")
			ugcPolicy = policy
		})
		return ugcPolicy
	default:
		return nil
	}
}

func normalizeMode(mode string) string {
	return strings.ToLower(strings.TrimSpace(mode))
}
