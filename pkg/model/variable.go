// Copyright © 2018 One Concern

package model

// Variable is one named configuration value snapshotted with a release.
//
// Existence across releases is keyed on Name, while value and scope changes
// are keyed on ID: the upstream system instantiates the same name once per
// scope, each instance with its own id.
type Variable struct {
	ID          string        `json:"id" yaml:"id"`
	Name        string        `json:"name" yaml:"name"`
	Value       string        `json:"value" yaml:"value"`
	IsSensitive bool          `json:"isSensitive" yaml:"isSensitive"`
	Scope       VariableScope `json:"scope" yaml:"scope"`
	_           struct{}
}

// VariableScope restricts where a variable value applies.
//
// Each dimension is an unordered set of identifiers. A nil or empty
// dimension means the variable is unscoped in that dimension.
type VariableScope struct {
	Environments []string `json:"environments,omitempty" yaml:"environments,omitempty"`
	Machines     []string `json:"machines,omitempty" yaml:"machines,omitempty"`
	Actions      []string `json:"actions,omitempty" yaml:"actions,omitempty"`
	Roles        []string `json:"roles,omitempty" yaml:"roles,omitempty"`
	Channels     []string `json:"channels,omitempty" yaml:"channels,omitempty"`
	TenantTags   []string `json:"tenantTags,omitempty" yaml:"tenantTags,omitempty"`
	Processes    []string `json:"processes,omitempty" yaml:"processes,omitempty"`
	_            struct{}
}

// Equal compares two scopes dimension by dimension as sets: element order
// and repetition are irrelevant, and nil equals empty.
func (s VariableScope) Equal(other VariableScope) bool {
	return setEqual(s.Environments, other.Environments) &&
		setEqual(s.Machines, other.Machines) &&
		setEqual(s.Actions, other.Actions) &&
		setEqual(s.Roles, other.Roles) &&
		setEqual(s.Channels, other.Channels) &&
		setEqual(s.TenantTags, other.TenantTags) &&
		setEqual(s.Processes, other.Processes)
}

// IsEmpty reports whether the variable is unscoped in every dimension.
func (s VariableScope) IsEmpty() bool {
	return len(s.Environments) == 0 &&
		len(s.Machines) == 0 &&
		len(s.Actions) == 0 &&
		len(s.Roles) == 0 &&
		len(s.Channels) == 0 &&
		len(s.TenantTags) == 0 &&
		len(s.Processes) == 0
}

func setEqual(a, b []string) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	as := make(map[string]struct{}, len(a))
	for _, e := range a {
		as[e] = struct{}{}
	}
	bs := make(map[string]struct{}, len(b))
	for _, e := range b {
		if _, ok := as[e]; !ok {
			return false
		}
		bs[e] = struct{}{}
	}
	return len(as) == len(bs)
}
