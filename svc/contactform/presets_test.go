package contactform_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactform/svc/contactform"
)

func TestPreset(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"invalid", "special", "valid"}, contactform.PresetNames())

	t.Run("valid preset passes every rule", func(t *testing.T) {
		t.Parallel()
		values, err := contactform.Preset(contactform.PresetValid)
		require.NoError(t, err)
		assert.Equal(t, "(555) 123-4567", values[contactform.FieldPhone])
		assert.True(t, contactform.CheckAll(values).Valid())
	})

	t.Run("invalid preset fails every rule", func(t *testing.T) {
		t.Parallel()
		values, err := contactform.Preset(contactform.PresetInvalid)
		require.NoError(t, err)
		report := contactform.CheckAll(values)
		for f, res := range report.Results {
			assert.False(t, res.Valid, "field %s", f)
		}
		assert.Len(t, report.Results, 5)
	})

	t.Run("special preset has no phone and an accented name", func(t *testing.T) {
		t.Parallel()
		values, err := contactform.Preset(contactform.PresetSpecial)
		require.NoError(t, err)
		_, hasPhone := values[contactform.FieldPhone]
		assert.False(t, hasPhone)
		assert.Equal(t, "José María O'Connor-Smith", values[contactform.FieldName])
		assert.Equal(t, contactform.MsgNameInvalid, contactform.Validate(contactform.FieldName, values[contactform.FieldName]).Message)
		assert.True(t, contactform.Validate(contactform.FieldEmail, values[contactform.FieldEmail]).Valid)
	})

	t.Run("returns a copy", func(t *testing.T) {
		t.Parallel()
		a, err := contactform.Preset(contactform.PresetValid)
		require.NoError(t, err)
		a[contactform.FieldName] = "changed"
		b, err := contactform.Preset(contactform.PresetValid)
		require.NoError(t, err)
		assert.Equal(t, "John Doe", b[contactform.FieldName])
	})

	t.Run("unknown preset", func(t *testing.T) {
		t.Parallel()
		_, err := contactform.Preset("nope")
		assert.ErrorIs(t, err, contactform.ErrUnknownPreset)
	})
}

func TestParsePresets(t *testing.T) {
	t.Parallel()

	t.Run("unknown field", func(t *testing.T) {
		t.Parallel()
		_, err := contactform.ParsePresets([]byte("demo:\n  address: Main St\n"))
		assert.ErrorIs(t, err, contactform.ErrUnknownField)
		assert.Contains(t, err.Error(), `preset "demo"`)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()
		_, err := contactform.ParsePresets([]byte("demo: [unclosed"))
		assert.Error(t, err)
	})
}
