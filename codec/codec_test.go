package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"json", "json", true},
		{"go-json", "go-json", true},
		{"", "go-json", true},
		{"msgpack", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := ByName(tt.name)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, c.Name())
			}
		})
	}
}

func TestCodecsAgreeOnValueLists(t *testing.T) {
	values := []string{"cat", "dog", "", "héllo", "tab\tquote\""}

	for _, c := range []Codec{JSON{}, GoJSON{}} {
		t.Run(c.Name(), func(t *testing.T) {
			data, err := c.Marshal(values)
			require.NoError(t, err)

			var got []string
			require.NoError(t, c.Unmarshal(data, &got))
			assert.Equal(t, values, got)

			// Either codec reads the other's output.
			var cross []string
			require.NoError(t, JSON{}.Unmarshal(data, &cross))
			assert.Equal(t, values, cross)
		})
	}
}

func TestMustMarshal(t *testing.T) {
	assert.JSONEq(t, `["a","b"]`, string(MustMarshal(nil, []string{"a", "b"})))
	assert.Panics(t, func() { MustMarshal(JSON{}, make(chan int)) })
}

func BenchmarkCodecMarshal(b *testing.B) {
	values := make([]string, 1024)
	for i := range values {
		values[i] = "value-" + string(rune('a'+i%26))
	}

	for _, c := range []Codec{JSON{}, GoJSON{}} {
		b.Run(c.Name(), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(MustMarshal(c, values))))
			for b.Loop() {
				if _, err := c.Marshal(values); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
