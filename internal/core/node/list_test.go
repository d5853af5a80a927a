package node

import (
	"context"
	"testing"
	"time"

	"github.com/yndnr/keymesh-go/internal/core/domain"
)

func TestListNode_PushPop(t *testing.T) {
	n := newListNode(newTestSpace(t))

	if got := recv(t, n, pay("rpush", "l", "a", "b")); got != "2" {
		t.Fatalf("rpush = %q, want 2", got)
	}
	if got := recv(t, n, pay("lpush", "l", "z")); got != "3" {
		t.Fatalf("lpush = %q, want 3", got)
	}
	if got := recv(t, n, pay("lpop", "l")); got != "z" {
		t.Fatalf("lpop = %q, want z", got)
	}
	if got := recv(t, n, pay("rpop", "l")); got != "b" {
		t.Fatalf("rpop = %q, want b", got)
	}
}

func TestListNode_PopEmpty(t *testing.T) {
	n := newListNode(newTestSpace(t))
	if got := recv(t, n, pay("lpop", "l")); got != ReplyNone {
		t.Fatalf("lpop empty = %q, want %q", got, ReplyNone)
	}
	if got := recv(t, n, pay("rpop", "l")); got != ReplyNone {
		t.Fatalf("rpop empty = %q, want %q", got, ReplyNone)
	}
}

func TestListNode_LpushOrder(t *testing.T) {
	n := newListNode(newTestSpace(t))
	recv(t, n, pay("lpush", "l", "a", "b", "c"))

	// Each value is pushed to the head in turn, so the last one ends
	// up first.
	if got := recv(t, n, pay("lrange", "l", "0", "3")); got != "c\nb\na" {
		t.Fatalf("lrange = %q, want c\\nb\\na", got)
	}
}

func TestListNode_LsetLindex(t *testing.T) {
	n := newListNode(newTestSpace(t))
	recv(t, n, pay("rpush", "l", "a", "b", "c"))

	if got := recv(t, n, pay("lset", "l", "1", "B")); got != ReplyOK {
		t.Fatalf("lset = %q, want OK", got)
	}
	if got := recv(t, n, pay("lindex", "l", "1")); got != "B" {
		t.Fatalf("lindex = %q, want B", got)
	}
	if got := recv(t, n, pay("lindex", "l", "-1")); got != "c" {
		t.Fatalf("lindex -1 = %q, want c", got)
	}
	if got := recv(t, n, pay("lindex", "l", "9")); got != ReplyNone {
		t.Fatalf("lindex out of range = %q, want %q", got, ReplyNone)
	}
	if got := recv(t, n, pay("lset", "l", "9", "x")); got != domain.ErrIndexOutOfRange.Message {
		t.Fatalf("lset out of range = %q, want %q", got, domain.ErrIndexOutOfRange.Message)
	}
}

func TestListNode_Lrem(t *testing.T) {
	n := newListNode(newTestSpace(t))
	recv(t, n, pay("rpush", "l", "a", "b", "c"))

	if got := recv(t, n, pay("lrem", "l", "1")); got != "1" {
		t.Fatalf("lrem = %q, want 1", got)
	}
	if got := recv(t, n, pay("lrange", "l", "0", "9")); got != "a\nc" {
		t.Fatalf("lrange after lrem = %q, want a\\nc", got)
	}
	if got := recv(t, n, pay("lrem", "l", "9")); got != "0" {
		t.Fatalf("lrem out of range = %q, want 0", got)
	}
	if got := recv(t, n, pay("lrem", "l", "-1")); got != "1" {
		t.Fatalf("lrem -1 = %q, want 1", got)
	}
	if got := recv(t, n, pay("llen", "l")); got != "1" {
		t.Fatalf("llen = %q, want 1", got)
	}
}

func TestListNode_LrangeLtrim(t *testing.T) {
	n := newListNode(newTestSpace(t))
	recv(t, n, pay("rpush", "l", "a", "b", "c", "d"))

	if got := recv(t, n, pay("lrange", "l", "1", "3")); got != "b\nc" {
		t.Fatalf("lrange 1 3 = %q, want b\\nc", got)
	}
	if got := recv(t, n, pay("lrange", "l", "0", "-1")); got != "a\nb\nc" {
		t.Fatalf("lrange 0 -1 = %q, want a\\nb\\nc", got)
	}

	if got := recv(t, n, pay("ltrim", "l", "1", "3")); got != ReplyOK {
		t.Fatalf("ltrim = %q, want OK", got)
	}
	if got := recv(t, n, pay("lrange", "l", "0", "9")); got != "b\nc" {
		t.Fatalf("lrange after ltrim = %q, want b\\nc", got)
	}
}

func TestListNode_Linsert(t *testing.T) {
	n := newListNode(newTestSpace(t))
	recv(t, n, pay("rpush", "l", "a", "c"))

	if got := recv(t, n, pay("linsert", "l", "before", "c", "b")); got != "3" {
		t.Fatalf("linsert before = %q, want 3", got)
	}
	if got := recv(t, n, pay("linsert", "l", "AFTER", "c", "d")); got != "4" {
		t.Fatalf("linsert after = %q, want 4", got)
	}
	if got := recv(t, n, pay("lrange", "l", "0", "9")); got != "a\nb\nc\nd" {
		t.Fatalf("lrange = %q, want a\\nb\\nc\\nd", got)
	}
	if got := recv(t, n, pay("linsert", "l", "before", "nope", "x")); got != "-1" {
		t.Fatalf("linsert missing pivot = %q, want -1", got)
	}
	if got := recv(t, n, pay("linsert", "l", "sideways", "a", "x")); got != domain.ErrSyntax.Message {
		t.Fatalf("linsert bad keyword = %q, want %q", got, domain.ErrSyntax.Message)
	}
}

func TestListNode_Rpoplpush(t *testing.T) {
	space := newTestSpace(t)
	src := newListNode(space)
	recv(t, src, pay("rpush", "src", "a", "b"))

	if got := recv(t, src, pay("rpoplpush", "src", "dst")); got != "b" {
		t.Fatalf("rpoplpush = %q, want b", got)
	}
	if got := recv(t, src, pay("llen", "src")); got != "1" {
		t.Fatalf("src llen = %q, want 1", got)
	}

	dst, ok := space.Resolve("dst")
	if !ok {
		t.Fatal("dst was not materialized")
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	reply, err := dst.Ask(ctx, pay("lpop", "dst"))
	if err != nil {
		t.Fatalf("Ask dst: %v", err)
	}
	if reply != "b" {
		t.Fatalf("dst lpop = %v, want b", reply)
	}
}

func TestListNode_RpoplpushEmpty(t *testing.T) {
	n := newListNode(newTestSpace(t))
	if got := recv(t, n, pay("rpoplpush", "src", "dst")); got != ReplyNone {
		t.Fatalf("rpoplpush empty = %q, want %q", got, ReplyNone)
	}
}

func TestListNode_Blocking_NotImplemented(t *testing.T) {
	n := newListNode(newTestSpace(t))
	for _, cmd := range []string{"blpop", "brpop", "brpoplpush"} {
		if got := recv(t, n, pay(cmd, "l", "0")); got != domain.ErrNotImplemented.Message {
			t.Errorf("%s = %q, want %q", cmd, got, domain.ErrNotImplemented.Message)
		}
	}
}
