package agent

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"supportcrew/pkg/memory"
	"supportcrew/pkg/models"
	"supportcrew/pkg/tools"
)

const (
	defaultMaxSteps     = 4
	defaultContextLimit = 8
)

// TaskSpec is the unit of work handed to an executor. Context carries the
// output of earlier tasks in the run.
type TaskSpec struct {
	Description    string
	ExpectedOutput string
	Context        string
}

// ExecutorOptions configure a new Executor.
type ExecutorOptions struct {
	Agent        Agent
	Model        models.Agent
	Memory       *memory.SessionMemory
	SessionID    string
	Tools        []tools.Tool
	Coworkers    []*Executor
	MaxSteps     int
	ContextLimit int
}

// Executor binds an agent descriptor to a model, tools, co-workers and
// session memory, and drives the generate/act loop for one task at a time.
type Executor struct {
	agent        Agent
	model        models.Agent
	memory       *memory.SessionMemory
	sessionID    string
	maxSteps     int
	contextLimit int

	tools     map[string]tools.Tool
	toolOrder []tools.Tool

	coworkers     map[string]*Executor
	coworkerOrder []*Executor
}

// NewExecutor creates an Executor with the provided options.
func NewExecutor(opts ExecutorOptions) (*Executor, error) {
	if opts.Model == nil {
		return nil, errors.New("executor requires a language model")
	}
	if strings.TrimSpace(opts.Agent.Role) == "" {
		return nil, errors.New("executor requires an agent role")
	}

	maxSteps := opts.MaxSteps
	if maxSteps <= 0 {
		maxSteps = defaultMaxSteps
	}
	ctxLimit := opts.ContextLimit
	if ctxLimit <= 0 {
		ctxLimit = defaultContextLimit
	}
	sessionID := opts.SessionID
	if sessionID == "" {
		sessionID = opts.Agent.Slug()
	}

	e := &Executor{
		agent:        opts.Agent,
		model:        opts.Model,
		memory:       opts.Memory,
		sessionID:    sessionID,
		maxSteps:     maxSteps,
		contextLimit: ctxLimit,
		tools:        make(map[string]tools.Tool),
		coworkers:    make(map[string]*Executor),
	}

	for _, tool := range opts.Tools {
		if tool == nil {
			continue
		}
		key := strings.ToLower(tool.Name())
		if key == "" {
			continue
		}
		e.tools[key] = tool
		e.toolOrder = append(e.toolOrder, tool)
	}

	for _, cw := range opts.Coworkers {
		if cw == nil {
			continue
		}
		e.addCoworker(cw)
	}

	return e, nil
}

// Agent returns the descriptor this executor runs.
func (e *Executor) Agent() Agent { return e.agent }

// WithTools returns a copy of the executor that can additionally use the
// given tools. The copy shares the model, memory, session and co-workers,
// which keeps task-scoped tool grants cheap.
func (e *Executor) WithTools(extra ...tools.Tool) *Executor {
	clone := &Executor{
		agent:         e.agent,
		model:         e.model,
		memory:        e.memory,
		sessionID:     e.sessionID,
		maxSteps:      e.maxSteps,
		contextLimit:  e.contextLimit,
		tools:         make(map[string]tools.Tool, len(e.tools)+len(extra)),
		coworkers:     e.coworkers,
		coworkerOrder: e.coworkerOrder,
	}
	clone.toolOrder = append(clone.toolOrder, e.toolOrder...)
	for k, v := range e.tools {
		clone.tools[k] = v
	}
	for _, tool := range extra {
		if tool == nil {
			continue
		}
		key := strings.ToLower(tool.Name())
		if key == "" {
			continue
		}
		if _, dup := clone.tools[key]; dup {
			continue
		}
		clone.tools[key] = tool
		clone.toolOrder = append(clone.toolOrder, tool)
	}
	return clone
}

// AddCoworker registers another executor this one may delegate to.
func (e *Executor) AddCoworker(cw *Executor) {
	if cw == nil || cw == e {
		return
	}
	e.addCoworker(cw)
}

func (e *Executor) addCoworker(cw *Executor) {
	key := cw.agent.Slug()
	if key == "" {
		return
	}
	if _, dup := e.coworkers[key]; dup {
		return
	}
	e.coworkers[key] = cw
	e.coworkerOrder = append(e.coworkerOrder, cw)
}

// Execute works the task to completion, servicing tool calls and delegation
// requests the model emits along the way.
func (e *Executor) Execute(ctx context.Context, task TaskSpec) (string, error) {
	if strings.TrimSpace(task.Description) == "" {
		return "", errors.New("task description is empty")
	}

	e.remember("user", task.Description)

	var observations []string
	for step := 0; step < e.maxSteps; step++ {
		prompt, err := e.buildPrompt(ctx, task, observations)
		if err != nil {
			return "", err
		}

		response, err := e.model.Generate(ctx, prompt)
		if err != nil {
			return "", err
		}
		response = strings.TrimSpace(response)

		handled, observation, err := e.handleCommand(ctx, response)
		if err != nil {
			return "", err
		}
		if !handled {
			e.remember("assistant", response)
			return response, nil
		}
		observations = append(observations, observation)
	}

	// A command is never an answer; if the model is still issuing them the
	// task failed.
	return "", fmt.Errorf("agent %q exhausted %d steps without a final answer", e.agent.Role, e.maxSteps)
}

// Answer responds to a delegated question in this agent's persona, without
// tool access. Used when a co-worker delegates work here.
func (e *Executor) Answer(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", errors.New("delegated question is empty")
	}

	var sb strings.Builder
	e.writePersona(&sb)
	sb.WriteString("\nA co-worker needs your help with the following question:\n")
	sb.WriteString(question)
	sb.WriteString("\n\nAnswer directly and completely.\n")

	resp, err := e.model.Generate(ctx, sb.String())
	if err != nil {
		return "", err
	}
	resp = strings.TrimSpace(resp)
	e.remember("assistant", resp)
	return resp, nil
}

func (e *Executor) writePersona(sb *strings.Builder) {
	fmt.Fprintf(sb, "You are %s.\n", e.agent.Role)
	fmt.Fprintf(sb, "Your goal: %s\n", e.agent.Goal)
	if e.agent.Backstory != "" {
		fmt.Fprintf(sb, "Backstory: %s\n", e.agent.Backstory)
	}
}

func (e *Executor) buildPrompt(ctx context.Context, task TaskSpec, observations []string) (string, error) {
	var sb strings.Builder
	e.writePersona(&sb)

	if len(e.toolOrder) > 0 {
		sb.WriteString("\nAvailable tools:\n")
		for _, tool := range e.toolOrder {
			fmt.Fprintf(&sb, "- %s: %s\n", tool.Name(), tool.Description())
		}
		sb.WriteString("Invoke a tool by replying with the exact format `tool:<name> <input>` if necessary.\n")
	}

	if e.agent.AllowDelegation && len(e.coworkerOrder) > 0 {
		sb.WriteString("\nCo-workers you may delegate to:\n")
		for _, cw := range e.coworkerOrder {
			fmt.Fprintf(&sb, "- %s: %s\n", cw.agent.Slug(), cw.agent.Goal)
		}
		sb.WriteString("Delegate by replying with `delegate:<co-worker> <question>` when it improves the answer.\n")
	}

	if e.memory != nil {
		records, err := e.memory.RetrieveContext(ctx, e.sessionID, task.Description, e.contextLimit)
		if err != nil {
			return "", err
		}
		current := strings.TrimSpace(task.Description)
		var lines []string
		for _, rec := range records {
			content := strings.TrimSpace(rec.Content)
			// The current task already appears under "Current task"; echoing
			// it here as memory would just repeat it.
			if content == "" || content == current {
				continue
			}
			lines = append(lines, fmt.Sprintf("[%s] %s", rec.Role, content))
		}
		if len(lines) > 0 {
			sb.WriteString("\nConversation memory:\n")
			for i, line := range lines {
				fmt.Fprintf(&sb, "%d. %s\n", i+1, line)
			}
		}
	}

	if strings.TrimSpace(task.Context) != "" {
		sb.WriteString("\nContext from previous work:\n")
		sb.WriteString(task.Context)
		sb.WriteString("\n")
	}

	sb.WriteString("\nCurrent task:\n")
	sb.WriteString(strings.TrimSpace(task.Description))
	sb.WriteString("\n")

	if task.ExpectedOutput != "" {
		sb.WriteString("\nExpected output:\n")
		sb.WriteString(task.ExpectedOutput)
		sb.WriteString("\n")
	}

	for _, obs := range observations {
		sb.WriteString("\n")
		sb.WriteString(obs)
		sb.WriteString("\n")
	}

	sb.WriteString("\nCompose the best possible answer. Reply with the final answer text only once you have everything you need.\n")
	return sb.String(), nil
}

// handleCommand services `tool:` and `delegate:` replies. It reports whether
// the reply was a command; the returned observation feeds the next step.
func (e *Executor) handleCommand(ctx context.Context, response string) (bool, string, error) {
	lower := strings.ToLower(response)

	switch {
	case strings.HasPrefix(lower, "tool:"):
		payload := strings.TrimSpace(response[len("tool:"):])
		if payload == "" {
			return true, "", errors.New("tool name is missing")
		}
		name, args := splitCommand(payload)
		tool, ok := e.tools[strings.ToLower(name)]
		if !ok {
			return true, "", fmt.Errorf("unknown tool: %s", name)
		}
		e.logf("%s is using tool %s", e.agent.Role, tool.Name())
		result, err := tool.Run(ctx, args)
		if err != nil {
			return true, "", fmt.Errorf("tool %s: %w", tool.Name(), err)
		}
		e.remember("tool", fmt.Sprintf("%s => %s", tool.Name(), strings.TrimSpace(result)))
		return true, fmt.Sprintf("Observation from tool %s:\n%s", tool.Name(), strings.TrimSpace(result)), nil

	case strings.HasPrefix(lower, "delegate:"):
		if !e.agent.AllowDelegation {
			return true, "", fmt.Errorf("agent %q is not allowed to delegate", e.agent.Role)
		}
		payload := strings.TrimSpace(response[len("delegate:"):])
		if payload == "" {
			return true, "", errors.New("co-worker name is missing")
		}
		name, question := splitCommand(payload)
		cw, ok := e.coworkers[strings.ToLower(name)]
		if !ok {
			return true, "", fmt.Errorf("unknown co-worker: %s", name)
		}
		e.logf("%s delegates to %s", e.agent.Role, cw.agent.Role)
		answer, err := cw.Answer(ctx, question)
		if err != nil {
			return true, "", err
		}
		e.remember("delegate", fmt.Sprintf("%s => %s", cw.agent.Slug(), strings.TrimSpace(answer)))
		return true, fmt.Sprintf("Answer from %s:\n%s", cw.agent.Slug(), strings.TrimSpace(answer)), nil

	default:
		return false, "", nil
	}
}

func (e *Executor) remember(role, content string) {
	if e.memory == nil {
		return
	}
	e.memory.Add(e.sessionID, role, content)
}

func (e *Executor) logf(format string, args ...any) {
	if e.agent.Verbose {
		log.Printf(format, args...)
	}
}

func splitCommand(payload string) (name string, args string) {
	parts := strings.Fields(payload)
	if len(parts) == 0 {
		return "", ""
	}
	name = parts[0]
	if len(payload) > len(name) {
		args = strings.TrimSpace(payload[len(name):])
	}
	return name, args
}
