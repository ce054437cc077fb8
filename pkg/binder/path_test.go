package binder_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactform/pkg/binder"
)

type fieldName string

type pathRequest struct {
	Session string    `path:"id"`
	Field   fieldName `path:"field"`
	Page    int       `path:"page"`
	Draft   bool
	Ignored string `path:"-"`
}

func extractor(params map[string]string) func(*http.Request, string) string {
	return func(_ *http.Request, name string) string { return params[name] }
}

func TestPath(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/", nil)

	t.Run("binds tagged and untagged fields", func(t *testing.T) {
		t.Parallel()
		bind := binder.Path(extractor(map[string]string{
			"id": "abc", "field": "email", "page": "3", "draft": "true", "-": "x",
		}))
		var p pathRequest
		require.NoError(t, bind(req, &p))
		assert.Equal(t, "abc", p.Session)
		assert.Equal(t, fieldName("email"), p.Field)
		assert.Equal(t, 3, p.Page)
		assert.True(t, p.Draft)
		assert.Empty(t, p.Ignored)
	})

	t.Run("missing params leave zero values", func(t *testing.T) {
		t.Parallel()
		var p pathRequest
		require.NoError(t, binder.Path(extractor(nil))(req, &p))
		assert.Equal(t, pathRequest{}, p)
	})

	t.Run("invalid int", func(t *testing.T) {
		t.Parallel()
		var p pathRequest
		err := binder.Path(extractor(map[string]string{"page": "two"}))(req, &p)
		assert.ErrorIs(t, err, binder.ErrFailedToParsePath)
		assert.Contains(t, err.Error(), "Page")
	})

	t.Run("nil extractor", func(t *testing.T) {
		t.Parallel()
		var p pathRequest
		assert.ErrorIs(t, binder.Path(nil)(req, &p), binder.ErrFailedToParsePath)
	})

	t.Run("non-struct target", func(t *testing.T) {
		t.Parallel()
		var s string
		assert.ErrorIs(t, binder.Path(extractor(nil))(req, &s), binder.ErrFailedToParsePath)
		assert.ErrorIs(t, binder.Path(extractor(nil))(req, pathRequest{}), binder.ErrFailedToParsePath)
	})
}
