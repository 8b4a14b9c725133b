// Package crew sequences tasks across agents and returns the final result.
package crew

import (
	"regexp"

	"supportcrew/pkg/agent"
	"supportcrew/pkg/tools"
)

// Task is one unit of work: a templated description, the output criteria,
// the agent responsible, and the tools that agent may use while working it.
type Task struct {
	Description    string
	ExpectedOutput string
	Agent          agent.Agent
	Tools          []tools.Tool
}

// Inputs maps placeholder names to the values substituted into task and
// backstory templates at kickoff time.
type Inputs map[string]string

var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// Interpolate fills {name} placeholders from inputs. Placeholders without a
// matching input are left intact.
func Interpolate(s string, inputs Inputs) string {
	if len(inputs) == 0 {
		return s
	}
	return placeholderPattern.ReplaceAllStringFunc(s, func(match string) string {
		key := match[1 : len(match)-1]
		if val, ok := inputs[key]; ok {
			return val
		}
		return match
	})
}
