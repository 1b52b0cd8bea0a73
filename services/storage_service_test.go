package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStorage(t *testing.T) *StorageService {
	t.Helper()
	storage, err := NewStorageService(t.TempDir())
	if err != nil {
		t.Fatalf("NewStorageService: %v", err)
	}
	return storage
}

func uploadFixture(t *testing.T, content string) *os.File {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "upload-*")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	return f
}

func TestStorageServiceCreatesSubdirectories(t *testing.T) {
	storage := newTestStorage(t)

	for _, sub := range []string{ScriptsDir, StoryboardDir} {
		info, err := os.Stat(filepath.Join(storage.BaseDir(), sub))
		if err != nil {
			t.Fatalf("subdirectory %s missing: %v", sub, err)
		}
		if !info.IsDir() {
			t.Errorf("%s is not a directory", sub)
		}
	}
}

func TestSaveScript(t *testing.T) {
	storage := newTestStorage(t)
	file := uploadFixture(t, "%PDF-1.4 fake script")

	url, err := storage.SaveScript(file, "breakdown.PDF")
	if err != nil {
		t.Fatalf("SaveScript: %v", err)
	}

	if !strings.HasPrefix(url, URLPrefix+"/"+ScriptsDir+"/") {
		t.Errorf("url %q not under %s/%s", url, URLPrefix, ScriptsDir)
	}
	if !strings.HasSuffix(url, ".pdf") {
		t.Errorf("url %q did not keep a lowercased extension", url)
	}

	local, ok := storage.LocalPath(url)
	if !ok {
		t.Fatalf("LocalPath rejected %q", url)
	}
	data, err := os.ReadFile(local)
	if err != nil {
		t.Fatalf("reading saved file: %v", err)
	}
	if string(data) != "%PDF-1.4 fake script" {
		t.Errorf("saved content mismatch: %q", data)
	}
}

func TestSaveStoryboardImageNamesAreUnique(t *testing.T) {
	storage := newTestStorage(t)

	first, err := storage.SaveStoryboardImage(uploadFixture(t, "a"), "frame.png")
	if err != nil {
		t.Fatalf("SaveStoryboardImage: %v", err)
	}
	second, err := storage.SaveStoryboardImage(uploadFixture(t, "b"), "frame.png")
	if err != nil {
		t.Fatalf("SaveStoryboardImage: %v", err)
	}

	if first == second {
		t.Errorf("two uploads of the same name collided: %q", first)
	}
}

func TestRemove(t *testing.T) {
	storage := newTestStorage(t)

	url, err := storage.SaveScript(uploadFixture(t, "content"), "script.pdf")
	if err != nil {
		t.Fatalf("SaveScript: %v", err)
	}

	if err := storage.Remove(url); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	local, _ := storage.LocalPath(url)
	if _, err := os.Stat(local); !os.IsNotExist(err) {
		t.Errorf("file still exists after Remove: %v", err)
	}

	// Removing again is best effort; a missing file is fine.
	if err := storage.Remove(url); err != nil {
		t.Errorf("second Remove returned %v", err)
	}
}

func TestLocalPath(t *testing.T) {
	storage := newTestStorage(t)

	tests := []struct {
		name    string
		urlPath string
		ok      bool
	}{
		{"valid script path", URLPrefix + "/" + ScriptsDir + "/abc.pdf", true},
		{"valid storyboard path", URLPrefix + "/" + StoryboardDir + "/abc.png", true},
		{"outside prefix", "/static/abc.pdf", false},
		{"empty", "", false},
		{"prefix only", URLPrefix + "/", false},
		{"parent traversal", URLPrefix + "/../secrets.txt", false},
		{"nested traversal", URLPrefix + "/" + ScriptsDir + "/../../secrets.txt", false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			local, ok := storage.LocalPath(test.urlPath)
			if ok != test.ok {
				t.Fatalf("LocalPath(%q) ok = %v, expected %v", test.urlPath, ok, test.ok)
			}
			if ok && !strings.HasPrefix(local, storage.BaseDir()) {
				t.Errorf("local path %q escapes base dir %q", local, storage.BaseDir())
			}
		})
	}
}
