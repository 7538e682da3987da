package collection

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadBody(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id":7}`), 0o600))

	body, err := readBody([]string{`{"id":1}`}, "")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1}`, string(body))

	body, err = readBody(nil, path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7}`, string(body))

	_, err = readBody([]string{`{}`}, path)
	assert.Error(t, err)

	_, err = readBody(nil, "")
	assert.Error(t, err)
}

func TestNewCommand(t *testing.T) {
	cmd := NewCommand("books", "Книги")

	names := make([]string, 0)
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"list", "get", "create", "update", "delete"}, names)
}
