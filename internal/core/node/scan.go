package node

import (
	"sort"
	"strconv"

	"github.com/yndnr/keymesh-go/internal/core/domain"
	"github.com/yndnr/keymesh-go/pkg/glob"
)

// DefaultScanCount is the page size used when a scan omits the count.
const DefaultScanCount = 10

// scanCollection implements the cursor+glob iteration shared by scan,
// hscan and sscan. args are the positional tokens after the key:
// [cursor [pattern [count]]]. The collection is sorted before paging so
// the order stays stable across calls of one scan sequence as long as
// the collection is not mutated in between.
func scanCollection(items []string, args []string) string {
	cursor := 0
	pattern := "*"
	count := DefaultScanCount

	if len(args) > 0 {
		c, err := strconv.Atoi(args[0])
		if err != nil || c < 0 {
			return domain.Reply(domain.ErrInvalidCursor)
		}
		cursor = c
	}
	if len(args) > 1 {
		pattern = args[1]
	}
	if len(args) > 2 {
		c, err := strconv.Atoi(args[2])
		if err != nil || c <= 0 {
			return domain.Reply(domain.ErrInvalidCursor)
		}
		count = c
	}

	p, err := glob.Compile(pattern)
	if err != nil {
		return domain.Reply(domain.ErrBadPattern)
	}

	filtered := items
	if !p.MatchAll() {
		filtered = make([]string, 0, len(items))
		for _, item := range items {
			if p.Match(item) {
				filtered = append(filtered, item)
			}
		}
	} else {
		filtered = append([]string(nil), items...)
	}
	sort.Strings(filtered)

	if cursor > len(filtered) {
		cursor = len(filtered)
	}
	end := cursor + count
	next := 0
	if end < len(filtered) {
		next = end
	} else {
		end = len(filtered)
	}

	reply := make([]string, 0, 1+end-cursor)
	reply = append(reply, strconv.Itoa(next))
	reply = append(reply, filtered[cursor:end]...)
	return joinLines(reply)
}
