package pagination

import (
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/irbrowse/core/internal/pkg/apperr"
)

// memSource is an in-memory Source over strings with substring filtering.
type memSource struct {
	items []string
}

func (s memSource) filtered(filter string) []string {
	out := make([]string, 0, len(s.items))
	for _, it := range s.items {
		if filter == "" || strings.Contains(it, filter) {
			out = append(out, it)
		}
	}
	sort.Strings(out)
	return out
}

func (s memSource) Count(filter string) (int64, error) {
	return int64(len(s.filtered(filter))), nil
}

func (s memSource) FetchSlice(filter, orderBy string, desc bool, limit, offset int) ([]string, error) {
	items := s.filtered(filter)
	if desc {
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
	}
	if offset >= len(items) {
		return []string{}, nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end], nil
}

func makeItems(n int) []string {
	items := make([]string, n)
	for i := range items {
		items[i] = string(rune('a'+i%26)) + string(rune('0'+i/26))
	}
	return items
}

var testSort = SortSpec{Default: "name", Fields: map[string]string{"name": "name"}}

func TestPageCompleteness(t *testing.T) {
	const total = 23
	const size = 5
	src := memSource{items: makeItems(total)}

	seen := make(map[string]bool)
	var count int
	for offset := 0; ; offset += size {
		page, err := Page[string](src, testSort, Params{Limit: size, Offset: offset})
		if err != nil {
			t.Fatalf("page at offset %d: %v", offset, err)
		}
		if page.TotalCount != total {
			t.Fatalf("total = %d, want %d", page.TotalCount, total)
		}
		if len(page.Items) == 0 {
			break
		}
		for _, it := range page.Items {
			if seen[it] {
				t.Fatalf("duplicate item %q at offset %d", it, offset)
			}
			seen[it] = true
			count++
		}
	}
	if count != total {
		t.Fatalf("paged through %d items, want %d", count, total)
	}
}

func TestPageOffsetPastEnd(t *testing.T) {
	src := memSource{items: makeItems(5)}

	page, err := Page[string](src, testSort, Params{Limit: 10, Offset: 1000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items) != 0 {
		t.Fatalf("items = %v, want empty", page.Items)
	}
	if page.TotalCount != 5 {
		t.Fatalf("total = %d, want 5", page.TotalCount)
	}
	if page.Offset != 1000 {
		t.Fatalf("offset = %d, want 1000", page.Offset)
	}
}

func TestPageDeterminism(t *testing.T) {
	src := memSource{items: makeItems(30)}
	p := Params{Filter: "a", Limit: 3, Offset: 0}

	first, err := Page[string](src, testSort, p)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Page[string](src, testSort, p)
	if err != nil {
		t.Fatal(err)
	}
	if len(first.Items) != len(second.Items) {
		t.Fatalf("item counts differ: %d vs %d", len(first.Items), len(second.Items))
	}
	for i := range first.Items {
		if first.Items[i] != second.Items[i] {
			t.Fatalf("item %d differs: %q vs %q", i, first.Items[i], second.Items[i])
		}
	}
}

func TestPageUnknownSortField(t *testing.T) {
	src := memSource{items: makeItems(5)}

	_, err := Page[string](src, testSort, Params{OrderBy: "bogus", Limit: 10})
	if !apperr.Is(err, apperr.KindInvalidSortField) {
		t.Fatalf("err = %v, want invalid sort field", err)
	}
}

func TestPageClampsLimit(t *testing.T) {
	src := memSource{items: makeItems(MaxSize * 3)}

	page, err := Page[string](src, testSort, Params{Limit: MaxSize * 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Items) != MaxSize {
		t.Fatalf("len(items) = %d, want clamp at %d", len(page.Items), MaxSize)
	}
}

func TestFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		url  string
		want Params
	}{
		{
			name: "defaults",
			url:  "/x",
			want: Params{Limit: DefaultSize, Offset: 0},
		},
		{
			name: "explicit",
			url:  "/x?num_results=25&offset=50&match=foo&order_by=title&desc=true",
			want: Params{Filter: "foo", OrderBy: "title", Desc: true, Limit: 25, Offset: 50},
		},
		{
			name: "garbage numbers fall back",
			url:  "/x?num_results=abc&offset=xyz",
			want: Params{Limit: DefaultSize, Offset: 0},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", tc.url, nil)
			got := FromContext(c)
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestEscapeLike(t *testing.T) {
	cases := map[string]string{
		"plain":   "plain",
		"100%":    "100\\%",
		"a_b":     "a\\_b",
		"back\\s": "back\\\\s",
	}
	for in, want := range cases {
		if got := escapeLike(in); got != want {
			t.Errorf("escapeLike(%q) = %q, want %q", in, got, want)
		}
	}
}
