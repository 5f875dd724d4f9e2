package models

import (
	"fmt"
	"reflect"
)

// Gate slugs used by the console UI to address individual safety flags.
const (
	GateOptIn       = "opt-in"
	GateSession24h  = "24h-session"
	GateWarmup      = "warmup"
	GateTemplate    = "template"
	GateRateLimiter = "rate-limiter"
	GateKillSwitch  = "kill-switch"
)

var gateFields = map[string]func(*SafetyFlags) *bool{
	GateOptIn:       func(f *SafetyFlags) *bool { return &f.OptInValidation },
	GateSession24h:  func(f *SafetyFlags) *bool { return &f.SessionRule24h },
	GateWarmup:      func(f *SafetyFlags) *bool { return &f.WarmupMode },
	GateTemplate:    func(f *SafetyFlags) *bool { return &f.TemplateEnforcement },
	GateRateLimiter: func(f *SafetyFlags) *bool { return &f.RateLimiter },
	GateKillSwitch:  func(f *SafetyFlags) *bool { return &f.KillSwitch },
}

// FlagByGate resolves a UI gate slug to the flag field it controls.
func FlagByGate(f *SafetyFlags, gate string) (*bool, bool) {
	resolve, ok := gateFields[gate]
	if !ok {
		return nil, false
	}
	return resolve(f), true
}

// GateNames returns every known gate slug.
func GateNames() []string {
	names := make([]string, 0, len(gateFields))
	for name := range gateFields {
		names = append(names, name)
	}
	return names
}

// ValidateGateMap checks at startup that every SafetyFlags field is reachable
// through exactly one gate slug, so a newly added flag cannot be silently
// unaddressable from the UI.
func ValidateGateMap() error {
	fieldCount := reflect.TypeOf(SafetyFlags{}).NumField()
	if len(gateFields) != fieldCount {
		return fmt.Errorf("gate map covers %d flags, SafetyFlags has %d fields", len(gateFields), fieldCount)
	}

	var probe SafetyFlags
	seen := make(map[*bool]string, len(gateFields))
	for name, resolve := range gateFields {
		ptr := resolve(&probe)
		if prev, dup := seen[ptr]; dup {
			return fmt.Errorf("gates %q and %q map to the same flag", prev, name)
		}
		seen[ptr] = name
	}
	return nil
}
