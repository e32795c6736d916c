package gen4

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"
)

// Real saves are 512KB: two 256KB halves, each starting with a small block
const testImageSize = 0x80000

// newTestImage builds a deterministic pseudo-random save image that validates
// under layout, with the given trainer name and gender byte in both blocks.
func newTestImage(t *testing.T, layout Layout, name string, gender byte) []byte {
	t.Helper()

	image := make([]byte, testImageSize)
	rng := rand.New(rand.NewSource(int64(layout) + 42))
	rng.Read(image)

	encoded, err := EncodeName(name)
	require.NoError(t, err)

	spec := layout.Spec()
	for _, base := range blockBases {
		image[base+spec.GenderOffset] = gender
		copy(image[base+spec.NameOffset:], encoded[:])
		sealBlock(image, spec, base)
	}
	return image
}

// sealBlock writes the correct checksum for the block at base
func sealBlock(image []byte, spec LayoutSpec, base int) {
	start, end := spec.ChecksumSpan(base)
	chk := ChecksumBytes(image[start:end])
	slot, _ := spec.ChecksumSlot(base)
	copy(image[slot:], chk[:])
}

// newBufferLogger returns a logger writing to the returned buffer
func newBufferLogger() (hclog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "gen4_test",
		Level:  hclog.Trace,
		Output: &buf,
	})
	return logger, &buf
}
