package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// writeMaster creates {dir}/masters/{name}.yaml.
func writeMaster(t *testing.T, dir, name, content string) {
	t.Helper()

	mastersDir := filepath.Join(dir, "masters")
	if err := os.MkdirAll(mastersDir, 0755); err != nil {
		t.Fatalf("failed to create masters dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(mastersDir, name+".yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write master: %v", err)
	}
}

func TestNewFilesystemLoader(t *testing.T) {
	t.Parallel()

	t.Run("valid directory", func(t *testing.T) {
		t.Parallel()

		loader, err := NewFilesystemLoader(t.TempDir())
		if err != nil {
			t.Fatalf("NewFilesystemLoader() error = %v", err)
		}
		if loader == nil {
			t.Fatal("NewFilesystemLoader() returned nil")
		}
	})

	t.Run("empty path returns error", func(t *testing.T) {
		t.Parallel()

		_, err := NewFilesystemLoader("")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader(\"\") error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("nonexistent directory returns error", func(t *testing.T) {
		t.Parallel()

		_, err := NewFilesystemLoader("/nonexistent/path/abc123xyz")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader() error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("file instead of directory returns error", func(t *testing.T) {
		t.Parallel()

		filePath := filepath.Join(t.TempDir(), "file.txt")
		if err := os.WriteFile(filePath, []byte("test"), 0644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		_, err := NewFilesystemLoader(filePath)
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestFilesystemLoader_LoadMaster(t *testing.T) {
	t.Parallel()

	t.Run("loads existing master", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeMaster(t, dir, "corporate", validMaster)

		loader, err := NewFilesystemLoader(dir)
		if err != nil {
			t.Fatalf("NewFilesystemLoader() error = %v", err)
		}
		m, err := loader.LoadMaster("corporate")
		if err != nil {
			t.Fatalf("LoadMaster() error = %v", err)
		}
		if m.Name != "corporate" || m.Width != 10 {
			t.Errorf("LoadMaster() = %+v", m)
		}
	})

	t.Run("missing master", func(t *testing.T) {
		t.Parallel()

		loader, err := NewFilesystemLoader(t.TempDir())
		if err != nil {
			t.Fatalf("NewFilesystemLoader() error = %v", err)
		}
		_, err = loader.LoadMaster("nope")
		if !errors.Is(err, ErrMasterNotFound) {
			t.Errorf("LoadMaster() error = %v, want ErrMasterNotFound", err)
		}
	})

	t.Run("invalid master", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeMaster(t, dir, "broken", "width: -1\n")

		loader, err := NewFilesystemLoader(dir)
		if err != nil {
			t.Fatalf("NewFilesystemLoader() error = %v", err)
		}
		_, err = loader.LoadMaster("broken")
		if !errors.Is(err, ErrInvalidMaster) {
			t.Errorf("LoadMaster() error = %v, want ErrInvalidMaster", err)
		}
	})

	t.Run("symlink escaping base is rejected", func(t *testing.T) {
		t.Parallel()

		outside := t.TempDir()
		if err := os.WriteFile(filepath.Join(outside, "evil.yaml"), []byte(validMaster), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		dir := t.TempDir()
		if err := os.MkdirAll(filepath.Join(dir, "masters"), 0755); err != nil {
			t.Fatalf("failed to create masters dir: %v", err)
		}
		link := filepath.Join(dir, "masters", "evil.yaml")
		if err := os.Symlink(filepath.Join(outside, "evil.yaml"), link); err != nil {
			t.Skipf("symlinks unavailable: %v", err)
		}

		loader, err := NewFilesystemLoader(dir)
		if err != nil {
			t.Fatalf("NewFilesystemLoader() error = %v", err)
		}
		_, err = loader.LoadMaster("evil")
		if !errors.Is(err, ErrPathTraversal) {
			t.Errorf("LoadMaster() error = %v, want ErrPathTraversal", err)
		}
	})
}

func TestFilesystemLoader_ListMasters(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeMaster(t, dir, "b", validMaster)
	writeMaster(t, dir, "a", validMaster)
	if err := os.WriteFile(filepath.Join(dir, "masters", "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	loader, err := NewFilesystemLoader(dir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}
	got, err := loader.ListMasters()
	if err != nil {
		t.Fatalf("ListMasters() error = %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Errorf("ListMasters() mismatch (-want +got):\n%s", diff)
	}
}
