package pkg

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/pkgender/pkg/config"
	saveerrors "github.com/provide-io/pkgender/pkg/save/errors"
	"github.com/provide-io/pkgender/pkg/save/gen4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSave writes a save image valid under layout to dir/name
func writeSave(t *testing.T, dir, name string, layout gen4.Layout, trainer string, gender byte) (string, []byte) {
	t.Helper()

	image := make([]byte, 0x80000)
	rand.New(rand.NewSource(7)).Read(image)

	encoded, err := gen4.EncodeName(trainer)
	require.NoError(t, err)

	spec := layout.Spec()
	for _, base := range []int{gen4.SmallBlock1Start, gen4.SmallBlock2Start} {
		image[base+spec.GenderOffset] = gender
		copy(image[base+spec.NameOffset:], encoded[:])
		start, end := spec.ChecksumSpan(base)
		chk := gen4.ChecksumBytes(image[start:end])
		slot, _ := spec.ChecksumSlot(base)
		copy(image[slot:], chk[:])
	}

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, image, 0o644))
	return path, image
}

func testLogger() (hclog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return hclog.New(&hclog.LoggerOptions{Name: "api_test", Level: hclog.Trace, Output: &buf}), &buf
}

func TestRunToggleGender(t *testing.T) {
	dir := t.TempDir()
	path, original := writeSave(t, dir, "hgss.sav", gen4.HGSS, "Lyra", 0x00)
	logger, _ := testLogger()

	outcome, err := Run(Options{
		SavePath:    path,
		Request:     gen4.ChangeRequest{Gender: true},
		backupToken: func() string { return "test" },
	}, logger)
	require.NoError(t, err)

	assert.Equal(t, gen4.HGSS, outcome.Layout)
	assert.True(t, outcome.Written)
	assert.Equal(t, gen4.Trainer{Name: "Lyra", Gender: gen4.Male}, outcome.Before)
	assert.Equal(t, gen4.Trainer{Name: "Lyra", Gender: gen4.Female}, outcome.After)

	patched, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, byte(0x01), patched[0x7C])
	assert.Equal(t, byte(0x01), patched[gen4.SmallBlock2Start+0x7C])

	report, err := gen4.Verify(patched, gen4.HGSS)
	require.NoError(t, err)
	assert.True(t, report.Blocks[0].OK())
	assert.True(t, report.Blocks[1].OK())

	assert.Equal(t, filepath.Join(dir, "hgss__bak_test.sav"), outcome.BackupPath)
	assert.NotEqual(t, path, outcome.BackupPath)
	backup, err := os.ReadFile(outcome.BackupPath)
	require.NoError(t, err)
	assert.Equal(t, original, backup)
}

func TestRunRenameUnderForcedGame(t *testing.T) {
	dir := t.TempDir()
	path, _ := writeSave(t, dir, "pt.sav", gen4.Pt, "Dawn", 0x01)
	game := gen4.Pt

	outcome, err := Run(Options{
		SavePath: path,
		Request:  gen4.ChangeRequest{Name: "Ais"},
		Game:     &game,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Ais", outcome.After.Name)
	assert.Equal(t, gen4.Female, outcome.After.Gender)

	patched, err := os.ReadFile(path)
	require.NoError(t, err)
	detection, err := gen4.Detect(patched, nil)
	require.NoError(t, err)
	assert.Equal(t, gen4.Pt, detection.Layout)
}

func TestRunVerifyOnlyLeavesFile(t *testing.T) {
	dir := t.TempDir()
	path, original := writeSave(t, dir, "dp.sav", gen4.DP, "Lucas", 0x00)

	outcome, err := Run(Options{
		SavePath:   path,
		Request:    gen4.ChangeRequest{Gender: true, Name: "Barry"},
		VerifyOnly: true,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, gen4.DP, outcome.Layout)
	assert.False(t, outcome.Written)
	assert.Empty(t, outcome.BackupPath)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, data)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no backup in verify-only mode")
}

func TestRunUnknownFormatLeavesFile(t *testing.T) {
	dir := t.TempDir()
	path, original := writeSave(t, dir, "broken.sav", gen4.HGSS, "Lyra", 0x00)
	original[0x500] ^= 0x01
	require.NoError(t, os.WriteFile(path, original, 0o644))

	_, err := Run(Options{SavePath: path, Request: gen4.ChangeRequest{Gender: true}}, nil)
	require.ErrorIs(t, err, saveerrors.ErrUnknownFormat)
	assert.Equal(t, ExitUnknownFormat, ExitCode(err))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, data)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRunInvalidName(t *testing.T) {
	dir := t.TempDir()
	path, _ := writeSave(t, dir, "hgss.sav", gen4.HGSS, "Lyra", 0x00)

	_, err := Run(Options{SavePath: path, Request: gen4.ChangeRequest{Name: "Lyra!"}}, nil)
	require.ErrorIs(t, err, saveerrors.ErrInvalidInput)
	assert.ErrorIs(t, err, saveerrors.ErrInvalidName)
	assert.Equal(t, ExitInvalidArgs, ExitCode(err))
}

func TestRunMissingFile(t *testing.T) {
	_, err := Run(Options{SavePath: filepath.Join(t.TempDir(), "none.sav")}, nil)
	assert.ErrorIs(t, err, saveerrors.ErrInvalidInput)
}

func TestRunWarnsOnUnexpectedExtension(t *testing.T) {
	dir := t.TempDir()
	path, _ := writeSave(t, dir, "hgss.dsv", gen4.HGSS, "Lyra", 0x00)
	logger, logs := testLogger()

	cfg := config.Default()
	_, err := Run(Options{SavePath: path, VerifyOnly: true, Config: cfg}, logger)
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "expected extension")
}

func TestRunUsesConfigBackupInfix(t *testing.T) {
	dir := t.TempDir()
	path, _ := writeSave(t, dir, "hgss.sav", gen4.HGSS, "Lyra", 0x00)

	cfg := config.Default()
	cfg.BackupInfix = ".orig-"
	outcome, err := Run(Options{
		SavePath:    path,
		Config:      cfg,
		backupToken: func() string { return "1" },
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "hgss.orig-1.sav"), outcome.BackupPath)
}
