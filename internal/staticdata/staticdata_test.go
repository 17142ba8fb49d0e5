package staticdata

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		want UnitGroup
	}{
		{"cpu used by this session", Time},
		{"redo write time", Time},
		{"redo size", Volume},
		{"physical write bytes", Volume},
		{"user calls", Counter},
		{"enqueue waits", Counter},
		{"  USER   CALLS  ", Counter}, // normalized case/space-insensitive
		{"db block changes", Unknown},
	}
	for _, c := range cases {
		if got := Classify(c.name); got != c.want {
			t.Errorf("Classify(%q) = %v, want %v", c.name, got, c.want)
		}
	}
}
