package repl

import (
	"testing"
)

func TestNewCompleter(t *testing.T) {
	c := NewCompleter()
	if c == nil {
		t.Fatal("NewCompleter returned nil")
	}
	if len(c.commands) == 0 {
		t.Error("commands should be initialized")
	}
}

func TestCompleter_Complete(t *testing.T) {
	c := NewCompleter()

	tests := []struct {
		name   string
		prefix string
		want   []string
	}{
		{
			name:   "setr prefix",
			prefix: "setr",
			want:   []string{"setrange"},
		},
		{
			name:   "incr prefix",
			prefix: "incr",
			want:   []string{"incr", "incrby", "incrbyfloat"},
		},
		{
			name:   "hm prefix",
			prefix: "hm",
			want:   []string{"hmget", "hmset"},
		},
		{
			name:   "lpush prefix",
			prefix: "lpush",
			want:   []string{"lpush", "lpushx"},
		},
		{
			name:   "sdiff prefix",
			prefix: "sdiff",
			want:   []string{"sdiff", "sdiffstore"},
		},
		{
			name:   "ex prefix",
			prefix: "ex",
			want:   []string{"exists", "exit"},
		},
		{
			name:   "no match",
			prefix: "flushall",
			want:   nil,
		},
		{
			name:   "empty prefix",
			prefix: "",
			want:   nil, // All commands would match, but we expect all
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Complete(tt.prefix)

			if tt.prefix == "" {
				// For empty prefix, all commands should match
				if len(got) != len(c.commands) {
					t.Errorf("Complete(%q) returned %d items, want %d", tt.prefix, len(got), len(c.commands))
				}
				return
			}

			if tt.want == nil {
				if len(got) > 0 {
					t.Errorf("Complete(%q) = %v, want nil/empty", tt.prefix, got)
				}
				return
			}

			if len(got) != len(tt.want) {
				t.Errorf("Complete(%q) returned %d items, want %d", tt.prefix, len(got), len(tt.want))
				return
			}

			for i, g := range got {
				if g != tt.want[i] {
					t.Errorf("Complete(%q)[%d] = %q, want %q", tt.prefix, i, g, tt.want[i])
				}
			}
		})
	}
}

func TestCompleter_Commands(t *testing.T) {
	c := NewCompleter()

	// Check that essential commands are present
	essential := []string{
		"get", "set", "mget", "mset",
		"hget", "hset", "hgetall",
		"lpush", "rpush", "lrange", "rpoplpush",
		"sadd", "smembers", "sunion",
		"keys", "scan", "exists", "del",
		"ping", "quit", "exit",
	}

	for _, cmd := range essential {
		found := false
		for _, have := range c.commands {
			if have == cmd {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("essential command %q not found in commands", cmd)
		}
	}
}
