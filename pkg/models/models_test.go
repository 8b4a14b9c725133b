package models

import (
	"context"
	"strings"
	"testing"
)

func TestDummyLLMEchoesLastLine(t *testing.T) {
	llm := NewDummyLLM("Support draft:")
	out, err := llm.Generate(context.Background(), "system stuff\n\nhow do I add memory to my crew?\n")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if out != "Support draft: how do I add memory to my crew?" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestDummyLLMEmptyPrompt(t *testing.T) {
	llm := NewDummyLLM("")
	out, err := llm.Generate(context.Background(), "   \n\t\n")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if !strings.Contains(out, "<empty prompt>") {
		t.Fatalf("expected empty-prompt marker, got %q", out)
	}
}

func TestNewOpenAILLMRequiresKeyAndModel(t *testing.T) {
	if _, err := NewOpenAILLM("", "gpt-3.5-turbo", ""); err == nil {
		t.Fatal("expected error for missing api key")
	}
	if _, err := NewOpenAILLM("sk-test", "", ""); err == nil {
		t.Fatal("expected error for missing model name")
	}
	llm, err := NewOpenAILLM("sk-test", "gpt-3.5-turbo", "prefix")
	if err != nil {
		t.Fatalf("NewOpenAILLM: %v", err)
	}
	if llm.Model != "gpt-3.5-turbo" {
		t.Fatalf("model not retained: %q", llm.Model)
	}
}

func TestNewOllamaLLMRejectsBadHost(t *testing.T) {
	if _, err := NewOllamaLLM("://not-a-url", "llama3", ""); err == nil {
		t.Fatal("expected error for malformed host")
	}
}
