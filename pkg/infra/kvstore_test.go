package infra

import (
	"testing"

	"github.com/fystack/typed-storage/pkg/common/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string
	Count int
}

func TestCodecFor(t *testing.T) {
	c, err := CodecFor(enum.CodecTypeJSON)
	require.NoError(t, err)
	assert.Equal(t, JSON, c)

	c, err = CodecFor("")
	require.NoError(t, err)
	assert.Equal(t, JSON, c)

	c, err = CodecFor(enum.CodecTypeGob)
	require.NoError(t, err)
	assert.Equal(t, Gob, c)

	_, err = CodecFor("xml")
	assert.Error(t, err)
}

func TestCodecs_RoundTrip(t *testing.T) {
	for name, codec := range map[string]Codec{"json": JSON, "gob": Gob} {
		t.Run(name, func(t *testing.T) {
			in := sample{Name: "theme", Count: 3}
			data, err := codec.Marshal(in)
			require.NoError(t, err)

			var out sample
			require.NoError(t, codec.Unmarshal(data, &out))
			assert.Equal(t, in, out)
		})
	}
}

func TestJSONcodec_RejectsUnsupportedValues(t *testing.T) {
	_, err := JSON.Marshal(make(chan int))
	assert.Error(t, err)

	var out sample
	assert.Error(t, JSON.Unmarshal([]byte("{not json"), &out))
}
