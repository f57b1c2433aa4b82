package patscan

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContextRoundTrip(t *testing.T) {
	ctxt := NewContext([]Pattern{ssnPattern, visaPattern, digitRulePattern})

	var buf bytes.Buffer
	require.NoError(t, ctxt.Save(&buf))

	restored, err := LoadContext(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, ctxt.Patterns(), restored.Patterns())

	inputs := []string{
		"Hi, here is my social security number 444-42-1234",
		"visa 4045 1244 4270 0008, thanks",
		"12 and 14 ",
		"nothing to see",
	}
	for _, input := range inputs {
		require.Equal(t, scanAll(ctxt, input), scanAll(restored, input),
			"restored context disagrees on %q", input)
	}
}

func TestLoadContextRejectsBadMagic(t *testing.T) {
	_, err := LoadContext(bytes.NewReader([]byte("XXXX garbage that is not a context")))
	require.ErrorIs(t, err, ErrBadMagic)
}

func TestLoadContextRejectsVersionMismatch(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(ctxtMagic[:])
	require.NoError(t, binary.Write(&buf, binary.BigEndian, schemaVersion+1))
	buf.WriteString("payload")

	_, err := LoadContext(bytes.NewReader(buf.Bytes()))
	require.ErrorIs(t, err, ErrSchemaVersion)
}

func TestLoadContextRejectsTruncated(t *testing.T) {
	ctxt := NewContext([]Pattern{digitRulePattern})
	var buf bytes.Buffer
	require.NoError(t, ctxt.Save(&buf))

	truncated := buf.Bytes()[:buf.Len()/2]
	_, err := LoadContext(bytes.NewReader(truncated))
	require.Error(t, err)
}

func TestLoadContextRejectsShortHeader(t *testing.T) {
	_, err := LoadContext(bytes.NewReader([]byte("PS")))
	require.Error(t, err)
}
