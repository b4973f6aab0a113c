package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

func TestStore_WriteAndExists(t *testing.T) {
	store := NewStore(afero.NewMemMapFs(), "/out")

	exists, err := store.Exists("zhuyin_sounds/ㄅ_b.mp3")
	if err != nil || exists {
		t.Fatalf("Exists() before write = %v, %v; want false, nil", exists, err)
	}

	if err := store.Write("zhuyin_sounds/ㄅ_b.mp3", []byte("audio")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	exists, err = store.Exists("zhuyin_sounds/ㄅ_b.mp3")
	if err != nil || !exists {
		t.Fatalf("Exists() after write = %v, %v; want true, nil", exists, err)
	}

	data, err := afero.ReadFile(store.Fs(), "/out/zhuyin_sounds/ㄅ_b.mp3")
	if err != nil || string(data) != "audio" {
		t.Errorf("content = %q, %v", data, err)
	}

	if ok, _ := afero.Exists(store.Fs(), "/out/zhuyin_sounds/ㄅ_b.mp3.tmp"); ok {
		t.Error("temp file left behind")
	}
}

func TestStore_ExistsIgnoresDirectories(t *testing.T) {
	store := NewStore(afero.NewMemMapFs(), "/out")
	if err := store.EnsureLayout([]string{"tones/examples"}); err != nil {
		t.Fatalf("EnsureLayout() error = %v", err)
	}
	if exists, _ := store.Exists("tones/examples"); exists {
		t.Error("directory reported as artifact")
	}
}

func TestStore_WriteFailureLeavesNoArtifact(t *testing.T) {
	base := afero.NewMemMapFs()
	store := NewStore(afero.NewReadOnlyFs(base), "/out")

	if err := store.Write("individual_words/你好_nihao.mp3", []byte("audio")); err == nil {
		t.Fatal("Expected error writing to read-only filesystem")
	}
	if exists, _ := NewStore(base, "/out").Exists("individual_words/你好_nihao.mp3"); exists {
		t.Error("artifact visible after failed write")
	}
}

func TestStore_OSFilesystem(t *testing.T) {
	root := filepath.Join(t.TempDir(), "zhuyin_audios")
	store := NewOSStore(root)

	if store.RootExists() {
		t.Fatal("root should not exist yet")
	}
	if err := store.Write("vowels/words/ㄚ_啊_a.mp3", []byte{0xFF, 0xFB}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "vowels", "words", "ㄚ_啊_a.mp3")); err != nil {
		t.Errorf("artifact not on disk: %v", err)
	}
	if !store.RootExists() {
		t.Error("root should exist after write")
	}
}

func TestStore_RemoveAndPurge(t *testing.T) {
	store := NewStore(afero.NewMemMapFs(), "/out")
	_ = store.Write("zhuyin_sounds/ㄚ_a.mp3", []byte("a"))

	removed, err := store.Remove("zhuyin_sounds/ㄚ_a.mp3")
	if err != nil || !removed {
		t.Errorf("Remove() = %v, %v; want true, nil", removed, err)
	}
	removed, err = store.Remove("zhuyin_sounds/ㄚ_a.mp3")
	if err != nil || removed {
		t.Errorf("second Remove() = %v, %v; want false, nil", removed, err)
	}

	_ = store.Write("tones/examples/tono_1_媽_mā.mp3", []byte("t"))
	if err := store.Purge(); err != nil {
		t.Fatalf("Purge() error = %v", err)
	}
	if store.RootExists() {
		t.Error("root still exists after purge")
	}
}
