package node

import (
	"testing"

	"github.com/yndnr/keymesh-go/internal/core/domain"
)

func TestHashNode_SetGet(t *testing.T) {
	n := newHashNode()

	if got := recv(t, n, pay("hset", "h", "f", "v")); got != "1" {
		t.Fatalf("hset new field = %q, want 1", got)
	}
	if got := recv(t, n, pay("hset", "h", "f", "v2")); got != "0" {
		t.Fatalf("hset existing field = %q, want 0", got)
	}
	if got := recv(t, n, pay("hget", "h", "f")); got != "v2" {
		t.Fatalf("hget = %q, want v2", got)
	}
	if got := recv(t, n, pay("hget", "h", "nope")); got != ReplyNone {
		t.Fatalf("hget missing = %q, want %q", got, ReplyNone)
	}
}

func TestHashNode_Hsetnx(t *testing.T) {
	n := newHashNode()
	if got := recv(t, n, pay("hsetnx", "h", "f", "v")); got != "1" {
		t.Fatalf("hsetnx new = %q, want 1", got)
	}
	if got := recv(t, n, pay("hsetnx", "h", "f", "other")); got != "0" {
		t.Fatalf("hsetnx existing = %q, want 0", got)
	}
	if got := recv(t, n, pay("hget", "h", "f")); got != "v" {
		t.Fatalf("hget = %q, want v", got)
	}
}

func TestHashNode_GetallKeysVals(t *testing.T) {
	n := newHashNode()
	recv(t, n, pay("hset", "h", "b", "2"))
	recv(t, n, pay("hset", "h", "a", "1"))

	if got := recv(t, n, pay("hgetall", "h")); got != "a\n1\nb\n2" {
		t.Fatalf("hgetall = %q, want field-sorted pairs", got)
	}
	if got := recv(t, n, pay("hkeys", "h")); got != "a\nb" {
		t.Fatalf("hkeys = %q, want a\\nb", got)
	}
	if got := recv(t, n, pay("hvals", "h")); got != "1\n2" {
		t.Fatalf("hvals = %q, want 1\\n2", got)
	}
}

func TestHashNode_Hdel(t *testing.T) {
	n := newHashNode()
	recv(t, n, pay("hset", "h", "a", "1"))
	recv(t, n, pay("hset", "h", "b", "2"))

	if got := recv(t, n, pay("hdel", "h", "a", "b", "missing")); got != "2" {
		t.Fatalf("hdel = %q, want 2", got)
	}
	if got := recv(t, n, pay("hlen", "h")); got != "0" {
		t.Fatalf("hlen after hdel = %q, want 0", got)
	}
}

func TestHashNode_HexistsHlen(t *testing.T) {
	n := newHashNode()
	recv(t, n, pay("hset", "h", "f", "v"))

	if got := recv(t, n, pay("hexists", "h", "f")); got != "1" {
		t.Fatalf("hexists = %q, want 1", got)
	}
	if got := recv(t, n, pay("hexists", "h", "nope")); got != "0" {
		t.Fatalf("hexists missing = %q, want 0", got)
	}
	if got := recv(t, n, pay("hlen", "h")); got != "1" {
		t.Fatalf("hlen = %q, want 1", got)
	}
}

func TestHashNode_Hmget(t *testing.T) {
	n := newHashNode()
	recv(t, n, pay("hset", "h", "a", "1"))

	if got := recv(t, n, pay("hmget", "h", "a", "nope")); got != "1\nNone" {
		t.Fatalf("hmget = %q, want 1\\nNone", got)
	}
}

func TestHashNode_Hmset(t *testing.T) {
	n := newHashNode()

	if got := recv(t, n, pay("hmset", "h", "a", "1", "b", "2")); got != ReplyOK {
		t.Fatalf("hmset = %q, want OK", got)
	}
	if got := recv(t, n, pay("hget", "h", "b")); got != "2" {
		t.Fatalf("hget = %q, want 2", got)
	}
	if got := recv(t, n, pay("hmset", "h", "a", "1", "b")); got != domain.ErrTooFewParams.Message {
		t.Fatalf("hmset odd args = %q, want %q", got, domain.ErrTooFewParams.Message)
	}
}

func TestHashNode_Hincrby(t *testing.T) {
	n := newHashNode()

	if got := recv(t, n, pay("hincrby", "h", "c", "5")); got != "5" {
		t.Fatalf("hincrby on missing field = %q, want 5", got)
	}
	if got := recv(t, n, pay("hincrby", "h", "c", "-2")); got != "3" {
		t.Fatalf("hincrby = %q, want 3", got)
	}

	recv(t, n, pay("hset", "h", "s", "abc"))
	if got := recv(t, n, pay("hincrby", "h", "s", "1")); got != domain.ErrNotInteger.Message {
		t.Fatalf("hincrby on text = %q, want %q", got, domain.ErrNotInteger.Message)
	}
}

func TestHashNode_Hincrbyfloat(t *testing.T) {
	n := newHashNode()
	recv(t, n, pay("hset", "h", "f", "1.5"))

	if got := recv(t, n, pay("hincrbyfloat", "h", "f", "0.75")); got != "2.25" {
		t.Fatalf("hincrbyfloat = %q, want 2.25", got)
	}
}

func TestHashNode_Hscan(t *testing.T) {
	n := newHashNode()
	recv(t, n, pay("hmset", "h", "a", "1", "b", "2", "c", "3"))

	if got := recv(t, n, pay("hscan", "h", "0")); got != "0\na\nb\nc" {
		t.Fatalf("hscan = %q, want 0\\na\\nb\\nc", got)
	}
	if got := recv(t, n, pay("hscan", "h", "0", "a*")); got != "0\na" {
		t.Fatalf("hscan with pattern = %q, want 0\\na", got)
	}
}

func TestHashNode_WrongType(t *testing.T) {
	n := newHashNode()
	if got := recv(t, n, pay("get", "h")); got != domain.ErrWrongType.Message {
		t.Fatalf("get on hash node = %q, want %q", got, domain.ErrWrongType.Message)
	}
}
