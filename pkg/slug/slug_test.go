package slug

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMake(t *testing.T) {
	cases := map[string]string{
		"Laptop":                 "laptop",
		"Mechanical  Keyboard!":  "mechanical-keyboard",
		"  Café Crème 2  ":       "cafe-creme-2",
		"Über-Gadget / Pro Max":  "uber-gadget-pro-max",
		"---":                    "",
		"日本語":                    "",
		"USB-C Hub (7 in 1)":     "usb-c-hub-7-in-1",
		"already-a-slug":         "already-a-slug",
	}
	for in, want := range cases {
		assert.Equal(t, want, Make(in), "Make(%q)", in)
	}
}

func TestUnique(t *testing.T) {
	existing := map[string]bool{"laptop": true, "laptop-2": true}
	got, err := Unique("Laptop", func(s string) (bool, error) { return existing[s], nil })
	require.NoError(t, err)
	assert.Equal(t, "laptop-3", got)

	got, err = Unique("Mouse", func(s string) (bool, error) { return existing[s], nil })
	require.NoError(t, err)
	assert.Equal(t, "mouse", got)

	got, err = Unique("!!!", func(string) (bool, error) { return false, nil })
	require.NoError(t, err)
	assert.Equal(t, "item", got)

	_, err = Unique("Laptop", func(string) (bool, error) { return false, errors.New("db down") })
	assert.ErrorContains(t, err, "db down")
}
