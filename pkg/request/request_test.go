package request

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"careerboard/pkg/validator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPagination(t *testing.T) {
	tests := []struct {
		query string
		skip  int
		limit int
		ok    bool
	}{
		{"", 0, 100, true},
		{"?skip=20&limit=10", 20, 10, true},
		{"?limit=0", 0, 0, true},
		{"?limit=100000", 0, 100000, true},
		{"?skip=-1", 0, 0, false},
		{"?limit=ten", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/posts/"+tt.query, nil)
			skip, limit, err := Pagination(r)
			if !tt.ok {
				var inv *InvalidError
				assert.True(t, errors.As(err, &inv))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.skip, skip)
			assert.Equal(t, tt.limit, limit)
		})
	}
}

func TestPathID(t *testing.T) {
	id := uuid.New()
	r := httptest.NewRequest(http.MethodGet, "/posts/"+id.String(), nil)
	r.SetPathValue("id", id.String())

	got, err := PathID(r)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	r.SetPathValue("id", "42")
	_, err = PathID(r)
	var inv *InvalidError
	assert.True(t, errors.As(err, &inv))
}

func TestDecode(t *testing.T) {
	v, err := validator.New()
	require.NoError(t, err)

	t.Run("valid body", func(t *testing.T) {
		var dst struct {
			Title   string  `json:"title"`
			Content *string `json:"content"`
		}
		r := httptest.NewRequest(http.MethodPost, "/posts/", strings.NewReader(`{"title":"x","author_id":"ignored"}`))
		require.NoError(t, Decode(r, v, validator.PostCreate, &dst))
		assert.Equal(t, "x", dst.Title)
		assert.Nil(t, dst.Content)
	})

	t.Run("schema violation", func(t *testing.T) {
		var dst struct{}
		r := httptest.NewRequest(http.MethodPost, "/posts/", strings.NewReader(`{"content":"no title"}`))
		err := Decode(r, v, validator.PostCreate, &dst)
		var inv *InvalidError
		require.True(t, errors.As(err, &inv))
		assert.NotEmpty(t, inv.Violations)
	})
}
