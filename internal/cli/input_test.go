package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("Fulano\n"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Nick?", &out)
	require.NoError(t, err)
	require.Equal(t, "Fulano", got)
	require.Contains(t, out.String(), "Nick?")
}

func TestGetSimpleTextEOF(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("lastline"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Nick?", &out)
	require.NoError(t, err)
	require.Equal(t, "lastline", got)
}

func TestGetPassword_Error(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("boom")
	}
	var out bytes.Buffer
	_, err := GetPassword(&out, "Senha")
	require.Error(t, err)
}
