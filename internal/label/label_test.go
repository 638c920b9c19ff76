package label

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idlab-discover/EconCluster-cli/internal/apperr"
)

func TestDefaults(t *testing.T) {
	r, err := NewResolver(Defaults())
	require.NoError(t, err)
	assert.Equal(t, 3, r.K())

	l, err := r.Resolve(1)
	require.NoError(t, err)
	assert.Equal(t, "Emerging/Berkembang", l.Name)

	l, err = r.Resolve(2)
	require.NoError(t, err)
	assert.Equal(t, "Advanced/Maju", l.Name)
	assert.Equal(t, "Negara dengan Ekonomi Maju", l.Description)
}

func TestResolve_Unknown(t *testing.T) {
	r, err := NewResolver(Defaults())
	require.NoError(t, err)

	for _, id := range []int{-1, 3, 99} {
		_, err := r.Resolve(id)
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrUnknownCluster))
	}
}

func TestNewResolver_Rejects(t *testing.T) {
	tests := map[string][]Label{
		"empty":     nil,
		"gap":       {{ID: 0, Name: "a"}, {ID: 2, Name: "c"}},
		"duplicate": {{ID: 0, Name: "a"}, {ID: 0, Name: "b"}},
		"negative":  {{ID: -1, Name: "a"}},
		"no name":   {{ID: 0, Name: " "}},
	}
	for name, labels := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewResolver(labels)
			assert.Error(t, err)
		})
	}
}

func TestNewResolver_SortsByID(t *testing.T) {
	r, err := NewResolver([]Label{{ID: 1, Name: "b"}, {ID: 0, Name: "a"}})
	require.NoError(t, err)
	all := r.All()
	assert.Equal(t, "a", all[0].Name)
	assert.Equal(t, "b", all[1].Name)
}

func TestMerge(t *testing.T) {
	merged := Merge(Defaults(), []Label{
		{ID: 2, Name: "Advanced"},
		{ID: 0, Description: "Low income"},
		{ID: 3, Name: "Frontier"},
	})
	require.Len(t, merged, 4)
	assert.Equal(t, "Advanced", merged[2].Name)
	assert.Equal(t, "Negara dengan Ekonomi Maju", merged[2].Description)
	assert.Equal(t, "Developing/Tertinggal", merged[0].Name)
	assert.Equal(t, "Low income", merged[0].Description)
	assert.Equal(t, "Frontier", merged[3].Name)

	// Base is untouched.
	assert.Equal(t, "Advanced/Maju", Defaults()[2].Name)
}
