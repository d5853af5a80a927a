package node

import (
	"testing"

	"github.com/yndnr/keymesh-go/internal/core/domain"
)

func TestStringNode_SetGet(t *testing.T) {
	n := newStringNode()

	if got := recv(t, n, pay("get", "k")); got != "" {
		t.Fatalf("get on fresh node = %q, want empty", got)
	}
	if got := recv(t, n, pay("set", "k", "v1")); got != ReplyOK {
		t.Fatalf("set = %q, want OK", got)
	}
	if got := recv(t, n, pay("get", "k")); got != "v1" {
		t.Fatalf("get = %q, want v1", got)
	}
}

func TestStringNode_Setnx(t *testing.T) {
	n := newStringNode()
	if got := recv(t, n, pay("setnx", "k", "v")); got != "1" {
		t.Fatalf("setnx = %q, want 1", got)
	}
	if got := recv(t, n, pay("get", "k")); got != "v" {
		t.Fatalf("get = %q, want v", got)
	}
}

func TestStringNode_Getset(t *testing.T) {
	n := newStringNode()
	recv(t, n, pay("set", "k", "old"))

	if got := recv(t, n, pay("getset", "k", "new")); got != "old" {
		t.Fatalf("getset = %q, want old", got)
	}
	if got := recv(t, n, pay("get", "k")); got != "new" {
		t.Fatalf("get = %q, want new", got)
	}
}

func TestStringNode_Append(t *testing.T) {
	n := newStringNode()
	if got := recv(t, n, pay("append", "k", "foo")); got != "foo" {
		t.Fatalf("append = %q, want foo", got)
	}
	if got := recv(t, n, pay("append", "k", "bar")); got != "foobar" {
		t.Fatalf("append = %q, want foobar", got)
	}
}

func TestStringNode_Getrange(t *testing.T) {
	n := newStringNode()
	recv(t, n, pay("set", "k", "hello"))

	tests := []struct {
		lo, hi string
		want   string
	}{
		{"0", "5", "hello"},
		{"0", "2", "he"},
		{"1", "-1", "ell"},
		{"-3", "5", "llo"},
		{"0", "100", "hello"},
		{"3", "1", ""},
	}
	for _, tt := range tests {
		if got := recv(t, n, pay("getrange", "k", tt.lo, tt.hi)); got != tt.want {
			t.Errorf("getrange %s %s = %q, want %q", tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestStringNode_Setrange(t *testing.T) {
	n := newStringNode()
	recv(t, n, pay("set", "k", "hello"))

	if got := recv(t, n, pay("setrange", "k", "1", "a")); got != "hallo" {
		t.Fatalf("setrange = %q, want hallo", got)
	}
	if got := recv(t, n, pay("setrange", "k", "-1", "y")); got != "hally" {
		t.Fatalf("setrange negative = %q, want hally", got)
	}
	// Past the end the value stays untouched.
	if got := recv(t, n, pay("setrange", "k", "99", "z")); got != "hally" {
		t.Fatalf("setrange out of range = %q, want hally", got)
	}
}

func TestStringNode_Strlen(t *testing.T) {
	n := newStringNode()
	if got := recv(t, n, pay("strlen", "k")); got != "0" {
		t.Fatalf("strlen empty = %q, want 0", got)
	}
	recv(t, n, pay("set", "k", "four"))
	if got := recv(t, n, pay("strlen", "k")); got != "4" {
		t.Fatalf("strlen = %q, want 4", got)
	}
}

func TestStringNode_Counters(t *testing.T) {
	n := newStringNode()

	if got := recv(t, n, pay("incr", "k")); got != "1" {
		t.Fatalf("incr on empty = %q, want 1", got)
	}
	if got := recv(t, n, pay("incrby", "k", "10")); got != "11" {
		t.Fatalf("incrby = %q, want 11", got)
	}
	if got := recv(t, n, pay("decr", "k")); got != "10" {
		t.Fatalf("decr = %q, want 10", got)
	}
	if got := recv(t, n, pay("decrby", "k", "4")); got != "6" {
		t.Fatalf("decrby = %q, want 6", got)
	}
	if got := recv(t, n, pay("incrby", "k", "-2")); got != "4" {
		t.Fatalf("incrby negative = %q, want 4", got)
	}
}

func TestStringNode_IncrOnNonInteger(t *testing.T) {
	n := newStringNode()
	recv(t, n, pay("set", "k", "abc"))

	want := domain.ErrNotInteger.Message
	if got := recv(t, n, pay("incr", "k")); got != want {
		t.Fatalf("incr on text = %q, want %q", got, want)
	}
	if got := recv(t, n, pay("incrby", "k", "x")); got != want {
		t.Fatalf("incrby with bad step = %q, want %q", got, want)
	}
}

func TestStringNode_Incrbyfloat(t *testing.T) {
	n := newStringNode()
	recv(t, n, pay("set", "k", "10.5"))

	if got := recv(t, n, pay("incrbyfloat", "k", "0.25")); got != "10.75" {
		t.Fatalf("incrbyfloat = %q, want 10.75", got)
	}
	if got := recv(t, n, pay("incrbyfloat", "k", "oops")); got != domain.ErrNotFloat.Message {
		t.Fatalf("incrbyfloat bad step = %q, want %q", got, domain.ErrNotFloat.Message)
	}
}

func TestStringNode_Bitcount(t *testing.T) {
	n := newStringNode()
	if got := recv(t, n, pay("bitcount", "k")); got != "0" {
		t.Fatalf("bitcount empty = %q, want 0", got)
	}
	recv(t, n, pay("set", "k", "foobar"))
	if got := recv(t, n, pay("bitcount", "k")); got != "26" {
		t.Fatalf("bitcount = %q, want 26", got)
	}
}

func TestStringNode_WrongType(t *testing.T) {
	n := newStringNode()
	if got := recv(t, n, pay("hget", "k", "f")); got != domain.ErrWrongType.Message {
		t.Fatalf("hget on string node = %q, want %q", got, domain.ErrWrongType.Message)
	}
}

func TestStringNode_NotImplemented(t *testing.T) {
	n := newStringNode()
	for _, cmd := range []string{"getbit", "setbit", "setex", "psetex", "bitop", "bitpos"} {
		if got := recv(t, n, pay(cmd, "k", "0")); got != domain.ErrNotImplemented.Message {
			t.Errorf("%s = %q, want %q", cmd, got, domain.ErrNotImplemented.Message)
		}
	}
}

func TestStringNode_TooFewParams(t *testing.T) {
	n := newStringNode()
	want := domain.ErrTooFewParams.Message
	for _, cmd := range []string{"set", "setnx", "getset", "append", "incrby", "incrbyfloat"} {
		if got := recv(t, n, pay(cmd, "k")); got != want {
			t.Errorf("%s without args = %q, want %q", cmd, got, want)
		}
	}
}
