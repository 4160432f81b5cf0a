package hcp

import (
	"strings"

	"github.com/gcp-hcp/gcphcp/internal/clierr"
)

// Taint is a node taint in key=value:effect form.
type Taint struct {
	Key    string
	Value  string
	Effect string
}

// ParseLabels converts repeated key=value flags into a label map.
func ParseLabels(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	labels := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, clierr.Newf(clierr.Validation,
				"invalid label format %q; expected key=value", pair)
		}
		labels[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return labels, nil
}

// validTaintEffects are the accepted taint effect names.
var validTaintEffects = map[string]bool{
	"NoSchedule":       true,
	"PreferNoSchedule": true,
	"NoExecute":        true,
}

// ParseTaints converts repeated key=value:effect flags into taints.
func ParseTaints(specs []string) ([]Taint, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	taints := make([]Taint, 0, len(specs))
	for _, spec := range specs {
		kv, effect, ok := strings.Cut(spec, ":")
		if !ok {
			return nil, clierr.Newf(clierr.Validation,
				"invalid taint format %q; expected key=value:effect", spec)
		}
		key, value, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, clierr.Newf(clierr.Validation,
				"invalid taint format %q; expected key=value:effect", spec)
		}
		effect = strings.TrimSpace(effect)
		if !validTaintEffects[effect] {
			return nil, clierr.Newf(clierr.Validation,
				"invalid taint effect %q; expected NoSchedule, PreferNoSchedule or NoExecute", effect)
		}
		taints = append(taints, Taint{
			Key:    strings.TrimSpace(key),
			Value:  strings.TrimSpace(value),
			Effect: effect,
		})
	}
	return taints, nil
}
