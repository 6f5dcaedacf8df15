package convert

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"ao3/archive"
	"ao3/common"
	"ao3/config"
	"ao3/render"
	"ao3/skin"
	"ao3/state"
	"ao3/text"
)

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("fetch")

	if cmd.Args().Len() == 0 {
		return errors.New("no work has been specified")
	}

	dst := cmd.String("output")
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}

	format, err := common.ParseOutputFmt(cmd.String("to"))
	if err != nil {
		log.Warn("Unknown output format requested, switching to xhtml", zap.Error(err))
		format = common.OutputFmtXhtml
	}

	chapters, err := ParseChapterRange(cmd.String("chapters"))
	if err != nil {
		return fmt.Errorf("bad chapter range: %w", err)
	}

	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")
	env.OutputFmt, env.OutputDir = format, dst

	log.Info("Processing starting", zap.String("destination", dst), zap.Stringer("format", format))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	var failed int
	for _, arg := range cmd.Args().Slice() {
		id, err := ParseWorkRef(arg)
		if err != nil {
			log.Error("Skipping argument", zap.String("arg", arg), zap.Error(err))
			failed++
			continue
		}
		if err := processWork(ctx, id, dst, format, chapters, log); err != nil {
			log.Error("Unable to process work", zap.Int64("id", id), zap.Error(err))
			failed++
		}
	}
	if failed == cmd.Args().Len() {
		return errors.New("all requested works failed")
	}
	return nil
}

// ParseWorkRef accepts a bare work id or a work/chapter URL.
func ParseWorkRef(arg string) (int64, error) {
	arg = strings.TrimSpace(arg)
	if id, err := strconv.ParseInt(arg, 10, 64); err == nil && id > 0 {
		return id, nil
	}

	u, err := url.Parse(arg)
	if err != nil {
		return 0, fmt.Errorf("not a work id or URL: %q", arg)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, part := range parts {
		if part == "works" && i+1 < len(parts) {
			if id, err := strconv.ParseInt(parts[i+1], 10, 64); err == nil && id > 0 {
				return id, nil
			}
		}
	}
	return 0, fmt.Errorf("no work id found in %q", arg)
}

// ChapterRange selects chapters by their 1-based number, ends inclusive.
// Zero value selects everything, zero First or Last leaves that end open.
type ChapterRange struct {
	First, Last int
}

func (r ChapterRange) Contains(n int) bool {
	if r.First > 0 && n < r.First {
		return false
	}
	if r.Last > 0 && n > r.Last {
		return false
	}
	return true
}

// ParseChapterRange accepts "", "3", "2-5", "4-" and "-3".
func ParseChapterRange(arg string) (ChapterRange, error) {
	var r ChapterRange

	arg = strings.TrimSpace(arg)
	if len(arg) == 0 {
		return r, nil
	}

	first, last, dashed := strings.Cut(arg, "-")
	first, last = strings.TrimSpace(first), strings.TrimSpace(last)
	if !dashed {
		last = first
	} else if len(first) == 0 && len(last) == 0 {
		return r, fmt.Errorf("empty range %q", arg)
	}

	var err error
	if len(first) > 0 {
		if r.First, err = strconv.Atoi(first); err != nil || r.First < 1 {
			return ChapterRange{}, fmt.Errorf("bad chapter number %q", first)
		}
	}
	if len(last) > 0 {
		if r.Last, err = strconv.Atoi(last); err != nil || r.Last < 1 {
			return ChapterRange{}, fmt.Errorf("bad chapter number %q", last)
		}
	}
	if r.First > 0 && r.Last > 0 && r.First > r.Last {
		return ChapterRange{}, fmt.Errorf("backwards range %q", arg)
	}
	return r, nil
}

// processWork fetches one work and writes requested chapters out.
func processWork(ctx context.Context, id int64, dst string, format common.OutputFmt, chapters ChapterRange, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)

	log.Info("Work starting", zap.Int64("id", id))
	defer func(start time.Time) {
		// scraped markup is unpredictable, one bad work must not stop a batch
		if r := recover(); r != nil {
			log.Error("Work ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("work panic: %v", r)
		} else {
			log.Info("Work completed", zap.Duration("elapsed", time.Since(start)))
		}
	}(time.Now())

	w, err := env.Client.FetchWork(ctx, id)
	if err != nil {
		return err
	}

	ws := w.Skin
	if !env.Cfg.Document.ApplyWorkSkin {
		ws = skin.New(nil)
	}
	defaults := styleDefaults(env)
	splitter := text.NewSplitter(log)

	var saved int
	for i := range w.Chapters {
		if err := ctx.Err(); err != nil {
			return err
		}
		ch := &w.Chapters[i]
		if !chapters.Contains(ch.Number) {
			continue
		}
		if err := saveChapter(w, ch, ws, defaults, dst, format, splitter, env, log); err != nil {
			return fmt.Errorf("chapter %d: %w", ch.Number, err)
		}
		saved++
	}
	if saved == 0 {
		return fmt.Errorf("work has no chapters in requested range (%d total)", len(w.Chapters))
	}
	return nil
}

func saveChapter(w *archive.Work, ch *archive.Chapter, ws skin.WorkSkin, defaults render.Defaults,
	dst string, format common.OutputFmt, splitter *text.Splitter, env *state.LocalEnv, log *zap.Logger) error {

	rctx := render.NewContext(ws, defaults)

	var items []render.Item
	if env.Cfg.Document.IncludeSummary && len(ch.Summary) > 0 {
		items = append(items, render.Render(ch.Summary, rctx)...)
	}
	if env.Cfg.Document.IncludeNotes && len(ch.Notes) > 0 {
		items = append(items, render.Render(ch.Notes, rctx)...)
	}
	items = append(items, render.Render(ch.Body, rctx)...)
	if env.Cfg.Document.IncludeNotes && len(ch.EndNotes) > 0 {
		items = append(items, render.Render(ch.EndNotes, rctx)...)
	}

	outputName := buildOutputPath(w, ch, dst, format, env)

	// Check if output file already exists
	if _, err := os.Stat(outputName); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
		if err = os.Remove(outputName); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	switch format {
	case common.OutputFmtXhtml:
		doc := render.ToXHTML(items, render.XHTMLOptions{
			Title: chapterDocTitle(w, ch, format, env),
			Lang:  w.Language.String(),
		})
		doc.Indent(2)
		if err := doc.WriteToFile(outputName); err != nil {
			return fmt.Errorf("unable to write output: %w", err)
		}
	case common.OutputFmtText:
		if err := os.WriteFile(outputName, []byte(render.PlainText(items)), 0644); err != nil {
			return fmt.Errorf("unable to write output: %w", err)
		}
	}

	stats := splitter.Measure(render.PlainText(items))
	log.Info("Chapter saved",
		zap.String("to", outputName),
		zap.Int("words", stats.Words),
		zap.Int("sentences", stats.Sentences),
		zap.Duration("reading_time", stats.ReadingTime))

	// Store conversion result for debugging
	if env.Rpt != nil {
		env.Rpt.Store(fmt.Sprintf("result-%d-ch%02d%s", w.ID, ch.Number, filepath.Ext(outputName)), outputName)
	}
	return nil
}

func chapterDocTitle(w *archive.Work, ch *archive.Chapter, format common.OutputFmt, env *state.LocalEnv) string {
	if env.Cfg.Document.TitleTemplate != "" {
		if title, err := expandTemplate(w, ch, config.TitleTemplateFieldName, env.Cfg.Document.TitleTemplate, format); err == nil && title != "" {
			return title
		}
	}
	if ch.Title != "" {
		return fmt.Sprintf("%s - %s", w.Title, ch.Title)
	}
	if len(w.Chapters) > 1 {
		return fmt.Sprintf("%s - Chapter %d", w.Title, ch.Number)
	}
	return w.Title
}

func styleDefaults(env *state.LocalEnv) render.Defaults {
	style := env.Cfg.Document.Style
	return render.Defaults{
		BaseFontSize:    float64(style.BaseFontSize),
		FontDesign:      style.FontDesign,
		TextColor:       skin.ParseHex(style.TextColor),
		BackgroundColor: skin.ParseHex(style.BackgroundColor),
	}
}
