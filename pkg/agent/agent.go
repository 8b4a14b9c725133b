// Package agent defines agent descriptors and the executor that runs one
// agent against a model, its tools, and its co-workers.
package agent

import "strings"

// Agent describes one persona. It is plain configuration with no behavior;
// construct it once and hand it to an Executor or a crew.
type Agent struct {
	Role            string
	Goal            string
	Backstory       string
	AllowDelegation bool
	Verbose         bool
}

// Slug returns the stable handle other agents use to delegate to this one.
func (a Agent) Slug() string {
	return strings.ToLower(strings.Join(strings.Fields(a.Role), "_"))
}
