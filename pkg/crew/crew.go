package crew

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"supportcrew/pkg/agent"
	"supportcrew/pkg/memory"
	"supportcrew/pkg/models"
)

// TaskOutput pairs a completed task with what its agent produced.
type TaskOutput struct {
	Description string
	Agent       string
	Raw         string
}

// Result is what a kickoff returns. Raw is the last task's output.
type Result struct {
	Raw         string
	TaskOutputs []TaskOutput
}

func (r Result) String() string { return r.Raw }

// Options configure a new Crew.
type Options struct {
	Agents  []agent.Agent
	Tasks   []Task
	Model   models.Agent
	Memory  *memory.SessionMemory
	Verbose bool
}

// Crew runs its tasks strictly in order, once, against a single model. Each
// task's output is threaded into the next task's context, and every exchange
// is recorded in session memory.
type Crew struct {
	agents  []agent.Agent
	tasks   []Task
	model   models.Agent
	memory  *memory.SessionMemory
	verbose bool
}

// New validates the wiring: every task's agent must be registered with the
// crew, and there must be at least one task.
func New(opts Options) (*Crew, error) {
	if opts.Model == nil {
		return nil, errors.New("crew requires a language model")
	}
	if len(opts.Tasks) == 0 {
		return nil, errors.New("crew requires at least one task")
	}

	registered := make(map[string]bool, len(opts.Agents))
	for _, a := range opts.Agents {
		registered[a.Slug()] = true
	}
	for i, t := range opts.Tasks {
		if !registered[t.Agent.Slug()] {
			return nil, fmt.Errorf("task %d is assigned to unregistered agent %q", i, t.Agent.Role)
		}
	}

	mem := opts.Memory
	if mem == nil {
		mem = memory.NewSessionMemory(memory.NewInMemoryStore(), 32)
	}

	return &Crew{
		agents:  append([]agent.Agent(nil), opts.Agents...),
		tasks:   append([]Task(nil), opts.Tasks...),
		model:   opts.Model,
		memory:  mem,
		verbose: opts.Verbose,
	}, nil
}

// Kickoff executes the crew's tasks sequentially with the given inputs and
// returns the final result. There are no retries; the first failing task
// aborts the run.
func (c *Crew) Kickoff(ctx context.Context, inputs Inputs) (Result, error) {
	sessionID := "crew:" + uuid.NewString()

	// Build one executor per agent up front so delegation can reach every
	// co-worker regardless of task order.
	executors := make(map[string]*agent.Executor, len(c.agents))
	order := make([]*agent.Executor, 0, len(c.agents))
	for _, a := range c.agents {
		a.Backstory = Interpolate(a.Backstory, inputs)
		a.Goal = Interpolate(a.Goal, inputs)
		exec, err := agent.NewExecutor(agent.ExecutorOptions{
			Agent:     a,
			Model:     c.model,
			Memory:    c.memory,
			SessionID: sessionID,
		})
		if err != nil {
			return Result{}, fmt.Errorf("agent %q: %w", a.Role, err)
		}
		executors[a.Slug()] = exec
		order = append(order, exec)
	}
	for _, exec := range order {
		for _, other := range order {
			if other != exec {
				exec.AddCoworker(other)
			}
		}
	}

	var result Result
	var previous string
	for i, t := range c.tasks {
		exec := executors[t.Agent.Slug()]
		if len(t.Tools) > 0 {
			// Task-level tools are scoped to this task's executor only.
			exec = exec.WithTools(t.Tools...)
		}

		spec := agent.TaskSpec{
			Description:    Interpolate(t.Description, inputs),
			ExpectedOutput: Interpolate(t.ExpectedOutput, inputs),
			Context:        previous,
		}

		if c.verbose {
			log.Printf("crew: task %d/%d -> %s", i+1, len(c.tasks), t.Agent.Role)
		}

		out, err := exec.Execute(ctx, spec)
		if err != nil {
			return Result{}, fmt.Errorf("task %d (%s): %w", i+1, t.Agent.Role, err)
		}
		out = strings.TrimSpace(out)

		result.TaskOutputs = append(result.TaskOutputs, TaskOutput{
			Description: spec.Description,
			Agent:       t.Agent.Role,
			Raw:         out,
		})
		previous = out
	}

	if err := c.memory.FlushToLongTerm(ctx, sessionID); err != nil {
		return Result{}, fmt.Errorf("flush crew memory: %w", err)
	}

	result.Raw = previous
	return result, nil
}

// Memory exposes the crew's session memory, mainly for inspection in tests.
func (c *Crew) Memory() *memory.SessionMemory { return c.memory }
