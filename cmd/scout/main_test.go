package main

import "testing"

func TestIsExitWord(t *testing.T) {
	for _, word := range []string{"exit", "quit", "q"} {
		if !isExitWord(word) {
			t.Errorf("%q should end the interactive session", word)
		}
	}
	for _, word := range []string{"", "Q", "quit now", "exit?"} {
		if isExitWord(word) {
			t.Errorf("%q should not end the interactive session", word)
		}
	}
}

func TestBatchConcurrencyFlag(t *testing.T) {
	cmd := batchCmd()
	f := cmd.Flags().Lookup("concurrency")
	if f == nil {
		t.Fatal("batch command should expose a --concurrency flag")
	}
	if f.DefValue != "3" {
		t.Errorf("--concurrency default = %s, want 3", f.DefValue)
	}
	if f.Shorthand != "c" {
		t.Errorf("--concurrency shorthand = %q, want c", f.Shorthand)
	}
}
