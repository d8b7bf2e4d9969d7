package project

import (
	"fmt"

	"sharpc/internal/diag"
)

// ConfigKind classifies a configuration failure.
type ConfigKind uint8

const (
	ConfigDialect ConfigKind = iota + 1
	ConfigPlatform
	ConfigOutputKind
	ConfigManifest
	ConfigReferenceCycle
)

// ConfigError is a fatal configuration failure found before lowering.
type ConfigError struct {
	Kind   ConfigKind
	Path   string
	Value  string
	Detail string
}

func (e *ConfigError) Error() string {
	var msg string
	switch e.Kind {
	case ConfigDialect:
		msg = fmt.Sprintf("unsupported language_version %q, want %q", e.Value, LanguageVersion)
	case ConfigPlatform:
		msg = fmt.Sprintf("unsupported platform %q, want %q", e.Value, Platform)
	case ConfigOutputKind:
		msg = fmt.Sprintf("unsupported kind %q, want exe, winexe or dll", e.Value)
	default:
		msg = fmt.Sprintf("%s: %q", e.Detail, e.Value)
	}
	if e.Path == "" {
		return msg
	}
	return e.Path + ": " + msg
}

// Code returns the diagnostic code.
func (e *ConfigError) Code() diag.Code {
	switch e.Kind {
	case ConfigDialect:
		return diag.CfgDialect
	case ConfigPlatform:
		return diag.CfgPlatform
	case ConfigOutputKind:
		return diag.CfgOutputKind
	case ConfigReferenceCycle:
		return diag.CfgReferenceCycle
	default:
		return diag.CfgManifest
	}
}
