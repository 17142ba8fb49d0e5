package idleevents

import "testing"

func TestIsIdle(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"SQL*Net message from client", true},
		{"SQL*Net message from client extra qualifier", false}, // extends a canonical entry; no entry starts with it
		{"PX Deq: Txn Recovery", true},                         // canonical "PX Deq: Txn Recovery Start/Reply" starts with this
		{"rdbms ipc message", true},
		{"pmon timer", true},
		{"db file sequential read", false},
		{"log file sync", false},
		{"", true}, // every canonical entry starts with the empty string
	}
	for _, c := range cases {
		if got := IsIdle(c.name); got != c.want {
			t.Errorf("IsIdle(%q) = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestIdleEventsCount(t *testing.T) {
	if len(idleEvents) != 172 {
		t.Fatalf("expected 172 idle events, got %d", len(idleEvents))
	}
}
