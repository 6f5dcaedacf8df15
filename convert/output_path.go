package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"ao3/archive"
	"ao3/common"
	"ao3/config"
	"ao3/state"
)

// buildOutputPath returns constructed output file path/name based on various
// input parameters. It uses either default naming scheme or user-defined
// template, keeps one subdirectory per work unless flat output was requested,
// cleans up the path and if requested transliterates it.
func buildOutputPath(w *archive.Work, ch *archive.Chapter, dst string, format common.OutputFmt, env *state.LocalEnv) string {
	outDir := determineOutputDir(w, dst, env)
	defaultFile := buildDefaultFileName(w, ch, format, env)

	if env.Cfg.Document.OutputNameTemplate == "" {
		return filepath.Join(outDir, defaultFile)
	}

	expandedName := expandOutputNameTemplate(w, ch, format, env)
	if expandedName == "" {
		// fallback to default name if template expansion failed
		return filepath.Join(outDir, defaultFile)
	}
	if multichapter(w) {
		expandedName = fmt.Sprintf("%s - ch%02d", expandedName, ch.Number)
	}

	return assemblePathWithSubdirs(outDir, expandedName, format, env)
}

func determineOutputDir(w *archive.Work, dst string, env *state.LocalEnv) string {
	if env.NoDirs || !multichapter(w) {
		return dst
	}
	return filepath.Join(dst, cleanPathSegment(workBaseName(w), env))
}

func buildDefaultFileName(w *archive.Work, ch *archive.Chapter, format common.OutputFmt, env *state.LocalEnv) string {
	baseName := workBaseName(w)
	if multichapter(w) {
		baseName = fmt.Sprintf("%s - ch%02d", baseName, ch.Number)
	}
	return cleanPathSegment(baseName, env) + format.Ext()
}

func workBaseName(w *archive.Work) string {
	author := "Anonymous"
	if len(w.Authors) > 0 {
		author = w.Authors[0].Name
	}
	title := w.Title
	if title == "" {
		title = fmt.Sprintf("work-%d", w.ID)
	}
	return author + " - " + title
}

func multichapter(w *archive.Work) bool {
	return len(w.Chapters) > 1
}

func expandOutputNameTemplate(w *archive.Work, ch *archive.Chapter, format common.OutputFmt, env *state.LocalEnv) string {
	expandedName, err := expandTemplate(w, ch, config.OutputNameTemplateFieldName, env.Cfg.Document.OutputNameTemplate, format)
	if err != nil {
		env.Log.Warn("Unable to prepare output filename", zap.Error(err))
		return ""
	}
	return filepath.FromSlash(expandedName)
}

// assemblePathWithSubdirs takes an expanded template name (which may contain
// path separators for subdirectories) and assembles it into a full output path,
// cleaning and transliterating segments as needed
func assemblePathWithSubdirs(outDir, expandedName string, format common.OutputFmt, env *state.LocalEnv) string {
	outExt := format.Ext()
	pathSegments := splitAndCleanPath(expandedName)

	if len(pathSegments) == 0 {
		return outDir
	}

	fileName := cleanPathSegment(pathSegments[len(pathSegments)-1], env) + outExt
	dirParts := make([]string, 0, len(pathSegments)+1)
	dirParts = append(dirParts, outDir)

	for _, segment := range pathSegments[:len(pathSegments)-1] {
		dirParts = append(dirParts, cleanPathSegment(segment, env))
	}

	dirParts = append(dirParts, fileName)
	return filepath.Join(dirParts...)
}

func splitAndCleanPath(path string) []string {
	path = strings.TrimSuffix(path, string(os.PathSeparator))
	segments := make([]string, 0, 8)

	for head, tail := filepath.Split(path); tail != ""; head, tail = filepath.Split(head) {
		segments = slices.Insert(segments, 0, tail)
		head = strings.TrimSuffix(head, string(os.PathSeparator))
		if head == "" {
			break
		}
		path = head
	}

	return segments
}

func cleanPathSegment(segment string, env *state.LocalEnv) string {
	if env.Cfg.Document.FileNameTransliterate {
		segment = slug.Make(segment)
	}
	return config.CleanFileName(segment)
}
