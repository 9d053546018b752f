package filter_test

import (
	"testing"

	"oompa/backend/internal/filter"
	"oompa/backend/internal/model"

	"github.com/stretchr/testify/require"
)

var (
	ana = model.Oompa{ID: 1, FirstName: "Ana", LastName: "Gomez", Profession: "Inventor"}
	bob = model.Oompa{ID: 2, FirstName: "Bob", LastName: "Ruiz", Profession: "Cook"}
)

func TestApply_EmptyQueriesReturnList(t *testing.T) {
	list := []model.Oompa{ana, bob}
	require.Equal(t, list, filter.Apply(list, "", "", ""))
	require.Equal(t, list, filter.Apply(list, "  ", "", " "))
}

func TestApply(t *testing.T) {
	list := []model.Oompa{ana, bob}

	tests := []struct {
		name       string
		nameQuery  string
		profession string
		query      string
		want       []model.Oompa
	}{
		{name: "by name", nameQuery: "ana", want: []model.Oompa{ana}},
		{name: "by profession", profession: "cook", want: []model.Oompa{bob}},
		{name: "free query", query: "ruiz", want: []model.Oompa{bob}},
		{name: "free query matches profession", query: "INVENT", want: []model.Oompa{ana}},
		{name: "both explicit filters must match", nameQuery: "ana", profession: "cook", want: []model.Oompa{}},
		{name: "name across first and last", nameQuery: "a gom", want: []model.Oompa{ana}},
		{name: "explicit filter overrides free query", nameQuery: "bob", query: "ana", want: []model.Oompa{bob}},
		{name: "no match", query: "zzz", want: []model.Oompa{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filter.Apply(list, tt.nameQuery, tt.profession, tt.query)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	list := []model.Oompa{ana, bob}
	_ = filter.Apply(list, "bob", "", "")
	require.Equal(t, []model.Oompa{ana, bob}, list)
}

func TestCriteria_Active(t *testing.T) {
	require.False(t, filter.Criteria{}.Active())
	require.False(t, filter.Criteria{Name: "  "}.Active())
	require.True(t, filter.Criteria{Query: "x"}.Active())
	require.True(t, filter.Criteria{Profession: "cook"}.Active())
}
