package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func seeded(t *testing.T, items []thing) *Store[thing] {
	t.Helper()
	s := New[thing](&fakeGateway{listRet: [][]thing{items}})
	require.NoError(t, s.List(context.Background()))
	return s
}

func nThings(n int) []thing {
	out := make([]thing, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, thing{ID: fmt.Sprintf("%d", i), Name: fmt.Sprintf("item %d", i)})
	}
	return out
}

// ---- derived views are pure reads over the base collection ----

func TestWhere_PureAndRepeatable(t *testing.T) {
	s := seeded(t, []thing{
		{ID: "1", Favorite: true},
		{ID: "2"},
		{ID: "3", Favorite: true},
	})

	fav := func(e thing) bool { return e.Favorite }

	first := s.Where(fav)
	second := s.Where(fav)
	require.Equal(t, first, second, "no mutation in between, equal results")
	require.Equal(t, []string{"1", "3"}, ids(first))

	// Exactly the flag filter of the base collection, nothing cached.
	var manual []thing
	for _, e := range s.All() {
		if e.Favorite {
			manual = append(manual, e)
		}
	}
	require.Equal(t, manual, first)
}

func TestWhere_ReflectsMutationImmediately(t *testing.T) {
	s := seeded(t, []thing{{ID: "1", Favorite: false}})

	require.Empty(t, s.Where(func(e thing) bool { return e.Favorite }))

	gw := s.gw.(*fakeGateway)
	gw.doRet = thing{ID: "1", Favorite: true}
	_, err := s.Do(context.Background(), "1", Action("favorite"), nil)
	require.NoError(t, err)

	require.Equal(t, []string{"1"}, ids(s.Where(func(e thing) bool { return e.Favorite })))
}

// ---- pagination ----

func TestPaginate_Basics(t *testing.T) {
	items := nThings(13)

	p := Paginate(items, 1, 6)
	require.Equal(t, 3, p.TotalPages)
	require.Equal(t, 13, p.Total)
	require.Len(t, p.Items, 6)
	require.Equal(t, "1", p.Items[0].ID)

	p = Paginate(items, 3, 6)
	require.Equal(t, 3, p.Number)
	require.Len(t, p.Items, 1)
	require.Equal(t, "13", p.Items[0].ID)
}

// 13 items, pageSize 6, on page 3; remove 7 leaving 6: page count
// becomes 1 and the current page clamps to 1.
func TestPaginate_ClampAfterShrink(t *testing.T) {
	p := Paginate(nThings(13), 3, 6)
	require.Equal(t, 3, p.Number)

	p = Paginate(nThings(6), 3, 6)
	require.Equal(t, 1, p.TotalPages)
	require.Equal(t, 1, p.Number, "page beyond totalPages clamps to 1, not 3")
	require.Len(t, p.Items, 6)
}

func TestPaginate_EmptyAndDegenerate(t *testing.T) {
	p := Paginate([]thing{}, 1, 6)
	require.Equal(t, 0, p.TotalPages)
	require.Equal(t, 1, p.Number)
	require.Empty(t, p.Items)

	p = Paginate(nThings(3), 0, 6)
	require.Equal(t, 1, p.Number, "page below 1 clamps to 1")

	p = Paginate(nThings(3), 1, 0)
	require.Equal(t, 1, p.PageSize, "non-positive page size is coerced")
}

// ---- View = filter + paginate ----

func TestView_SearchFilterAndPage(t *testing.T) {
	s := seeded(t, []thing{
		{ID: "1", Name: "Acme Invoices"},
		{ID: "2", Name: "Globex"},
		{ID: "3", Name: "acme sub"},
	})

	match := func(e thing, q string) bool { return ContainsFold(e.Name, q) }

	p := s.View(Query{Search: "ACME", Page: 1, PageSize: 10}, match)
	require.Equal(t, []string{"1", "3"}, ids(p.Items))
	require.Equal(t, 2, p.Total)

	p = s.View(Query{Page: 1, PageSize: 2}, match)
	require.Equal(t, 2, p.TotalPages)
	require.Equal(t, []string{"1", "2"}, ids(p.Items))
}

// ---- search helpers ----

func TestContainsFold(t *testing.T) {
	require.True(t, ContainsFold("Acme Corp", "acme"))
	require.True(t, ContainsFold("acme", ""))
	require.False(t, ContainsFold("Globex", "acme"))
}

func TestDigits(t *testing.T) {
	require.Equal(t, "33612345678", Digits("+33 6 12 34 56 78"))
	require.Equal(t, "", Digits("no digits"))
}
