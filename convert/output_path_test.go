package convert

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"ao3/archive"
	"ao3/common"
	"ao3/config"
	"ao3/state"
)

func testEnv(doc config.DocumentConfig) *state.LocalEnv {
	return &state.LocalEnv{
		Cfg: &config.Config{Document: doc},
		Log: zap.NewNop(),
	}
}

func singleChapterWork() *archive.Work {
	return &archive.Work{
		ID:       42,
		Title:    "The Longest Night",
		Authors:  []archive.Pseud{{Name: "writer", User: "writer"}},
		Chapters: []archive.Chapter{{Number: 1}},
	}
}

func multiChapterWork() *archive.Work {
	w := singleChapterWork()
	w.Chapters = []archive.Chapter{{Number: 1}, {Number: 2}, {Number: 3}}
	return w
}

func TestBuildOutputPath_DefaultSingleChapter(t *testing.T) {
	w := singleChapterWork()
	env := testEnv(config.DocumentConfig{})

	got := buildOutputPath(w, &w.Chapters[0], "/out", common.OutputFmtXhtml, env)
	want := filepath.Join("/out", "writer - The Longest Night.xhtml")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuildOutputPath_DefaultMultichapter(t *testing.T) {
	w := multiChapterWork()
	env := testEnv(config.DocumentConfig{})

	got := buildOutputPath(w, &w.Chapters[1], "/out", common.OutputFmtXhtml, env)
	want := filepath.Join("/out", "writer - The Longest Night", "writer - The Longest Night - ch02.xhtml")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuildOutputPath_NoDirs(t *testing.T) {
	w := multiChapterWork()
	env := testEnv(config.DocumentConfig{})
	env.NoDirs = true

	got := buildOutputPath(w, &w.Chapters[0], "/out", common.OutputFmtText, env)
	want := filepath.Join("/out", "writer - The Longest Night - ch01.txt")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuildOutputPath_Template(t *testing.T) {
	w := singleChapterWork()
	env := testEnv(config.DocumentConfig{
		OutputNameTemplate: "{{ .Author }}/{{ .Title }}",
	})

	got := buildOutputPath(w, &w.Chapters[0], "/out", common.OutputFmtXhtml, env)
	want := filepath.Join("/out", "writer", "The Longest Night.xhtml")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuildOutputPath_TemplateMultichapterSuffix(t *testing.T) {
	w := multiChapterWork()
	env := testEnv(config.DocumentConfig{
		OutputNameTemplate: "{{ .Title }}",
	})
	env.NoDirs = true

	got := buildOutputPath(w, &w.Chapters[2], "/out", common.OutputFmtXhtml, env)
	want := filepath.Join("/out", "The Longest Night - ch03.xhtml")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuildOutputPath_BadTemplateFallsBack(t *testing.T) {
	w := singleChapterWork()
	env := testEnv(config.DocumentConfig{
		OutputNameTemplate: "{{ .NoSuchField }}",
	})

	got := buildOutputPath(w, &w.Chapters[0], "/out", common.OutputFmtXhtml, env)
	want := filepath.Join("/out", "writer - The Longest Night.xhtml")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuildOutputPath_Transliterate(t *testing.T) {
	w := singleChapterWork()
	w.Title = "Привет"
	w.Authors = []archive.Pseud{{Name: "Автор", User: "avtor"}}
	env := testEnv(config.DocumentConfig{FileNameTransliterate: true})

	got := buildOutputPath(w, &w.Chapters[0], "/out", common.OutputFmtXhtml, env)
	want := filepath.Join("/out", "avtor-privet.xhtml")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWorkBaseName_Fallbacks(t *testing.T) {
	w := &archive.Work{ID: 7}
	if got := workBaseName(w); got != "Anonymous - work-7" {
		t.Errorf("workBaseName = %q", got)
	}
}

func TestSplitAndCleanPath(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"a/b/c", []string{"a", "b", "c"}},
		{"single", []string{"single"}},
		{"trailing/", []string{"trailing"}},
	}
	for _, tt := range tests {
		got := splitAndCleanPath(filepath.FromSlash(tt.path))
		if len(got) != len(tt.want) {
			t.Errorf("splitAndCleanPath(%q) = %v, want %v", tt.path, got, tt.want)
			continue
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("splitAndCleanPath(%q)[%d] = %q, want %q", tt.path, i, got[i], tt.want[i])
			}
		}
	}
}
