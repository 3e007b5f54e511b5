package shortcut

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPath(t *testing.T) {
	got := DefaultPath("appdata", "Contoso")
	want := filepath.Join("appdata", "Microsoft", "Windows", "Start Menu", "Programs", "Contoso.lnk")
	assert.Equal(t, want, got)
}

func TestFileInstallerWritesLink(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Contoso.lnk")
	clsid := uuid.MustParse("7956e95c-d42e-413b-9c8e-c173e6adf0c7")

	require.NoError(t, FileInstaller{}.Install(path, `C:\apps\contoso.exe`, "Contoso.App", clsid))

	link, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, `C:\apps\contoso.exe`, link.Target)
	assert.Equal(t, "Contoso.App", link.AppUserModelID)
	assert.Equal(t, clsid, link.ToastActivatorCLSID)
}

func TestFileInstallerOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Contoso.lnk")
	require.NoError(t, os.WriteFile(path, []byte("stale bytes that are much longer than any descriptor would ever be ......"), 0644))

	clsid := uuid.New()
	require.NoError(t, FileInstaller{}.Install(path, "a.exe", "First.App", uuid.New()))
	require.NoError(t, FileInstaller{}.Install(path, "b.exe", "Second.App", clsid))

	link, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "b.exe", link.Target)
	assert.Equal(t, "Second.App", link.AppUserModelID)
	assert.Equal(t, clsid, link.ToastActivatorCLSID)
}

func TestFileInstallerMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "Contoso.lnk")

	err := FileInstaller{}.Install(path, "a.exe", "Contoso.App", uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.NoFileExists(t, path)
}
