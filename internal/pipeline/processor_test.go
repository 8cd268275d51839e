package pipeline

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	ferrors "git.home.luguber.info/inful/refsort/internal/foundation/errors"
	"git.home.luguber.info/inful/refsort/internal/frontmatter"
	"git.home.luguber.info/inful/refsort/internal/refdefs"
	"github.com/inful/mdfp"
	"github.com/stretchr/testify/require"
)

func newTestProcessor(fingerprint bool) *Processor {
	return NewProcessor(Options{References: refdefs.DefaultOptions(), Fingerprint: fingerprint}, nil)
}

func TestProcess_ChangelogBehindFrontMatter(t *testing.T) {
	raw := []byte("---\ntitle: Changes\n---\n# Changelog\n\n[1.0.0]: /v1\n[2.0.0]: /v2\n\n## [2.0.0]\n")

	res, err := newTestProcessor(false).Process("CHANGELOG.md", raw)
	require.NoError(t, err)

	require.True(t, res.Changed)
	require.True(t, res.Changelog)
	require.Equal(t, "---\ntitle: Changes\n---\n# Changelog\n\n## [2.0.0]\n\n[2.0.0]: /v2\n\n[1.0.0]: /v1\n", string(res.Output))
}

func TestProcess_AlreadyFormattedIsUnchanged(t *testing.T) {
	raw := []byte("See [a].\n\n[a]: /a\n")

	res, err := newTestProcessor(false).Process("doc.md", raw)
	require.NoError(t, err)
	require.False(t, res.Changed)
	require.Equal(t, raw, res.Output)
}

func TestProcess_PreservesCRLF(t *testing.T) {
	raw := []byte("---\r\ntitle: x\r\n---\r\nSee [b] and [a].\r\n\r\n[b]: /b\r\n[a]: /a\r\n")

	res, err := newTestProcessor(false).Process("doc.md", raw)
	require.NoError(t, err)
	require.Equal(t, "---\r\ntitle: x\r\n---\r\nSee [b] and [a].\r\n\r\n[a]: /a\r\n\r\n[b]: /b\r\n", string(res.Output))
}

func TestProcess_UnclosedFrontMatterIsBody(t *testing.T) {
	raw := []byte("---\nnot closed\n\nSee [a].\n[a]: /a\n")

	res, err := newTestProcessor(false).Process("doc.md", raw)
	require.NoError(t, err)
	require.Equal(t, "---\nnot closed\n\nSee [a].\n\n[a]: /a\n", string(res.Output))
}

func TestProcess_ReportsPrunedAndDuplicates(t *testing.T) {
	raw := []byte("Use [a].\n\n[a]: /1\n[a]: /2\n[dead]: /d\n")

	res, err := newTestProcessor(false).Process("doc.md", raw)
	require.NoError(t, err)
	require.Len(t, res.Definitions, 1)
	require.Len(t, res.Pruned, 1)
	require.Equal(t, "dead", res.Pruned[0].Label)
	require.Equal(t, []string{"a"}, res.Duplicates)
}

func TestProcess_SeparatorOption(t *testing.T) {
	opts := refdefs.DefaultOptions()
	opts.Separator = refdefs.SeparatorNewline
	p := NewProcessor(Options{References: opts}, nil)

	res, err := p.Process("doc.md", []byte("[b] [a]\n[a]: /a\n[b]: /b\n"))
	require.NoError(t, err)
	require.Equal(t, "[b] [a]\n\n[a]: /a\n[b]: /b\n", string(res.Output))
}

func TestProcess_RefreshesExistingFingerprint(t *testing.T) {
	raw := []byte("---\ntitle: Changes\nfingerprint: stale\nuid: abc\n---\nSee [b] [a].\n[b]: /b\n[a]: /a\n")

	res, err := newTestProcessor(true).Process("doc.md", raw)
	require.NoError(t, err)

	parts, err := frontmatter.Split(res.Output)
	require.NoError(t, err)
	fields, err := frontmatter.ParseYAML(parts.FrontMatter)
	require.NoError(t, err)

	want := mdfp.CalculateFingerprintFromParts("title: Changes", string(parts.Body))
	require.Equal(t, want, fields["fingerprint"])
	require.Equal(t, "abc", fields["uid"])
	require.Equal(t, "See [b] [a].\n\n[a]: /a\n\n[b]: /b\n", string(parts.Body))

	again, err := newTestProcessor(true).Process("doc.md", res.Output)
	require.NoError(t, err)
	require.False(t, again.Changed)
}

func TestProcess_FingerprintNotAddedWhenAbsent(t *testing.T) {
	raw := []byte("---\ntitle: Changes\n---\nSee [a].\n[a]: /a\n")

	res, err := newTestProcessor(true).Process("doc.md", raw)
	require.NoError(t, err)
	require.NotContains(t, string(res.Output), "fingerprint")
}

func TestProcess_InvalidFrontMatterWithFingerprintEnabled(t *testing.T) {
	raw := []byte("---\n: not yaml\n---\nBody\n")

	_, err := newTestProcessor(true).Process("bad.md", raw)
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryParse))
}

func TestProcessFile_WritesOnlyWhenRequested(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "CHANGELOG.md")
	original := "# Changelog\n\n[0.1.0]: /a\n[0.2.0]: /b\n"
	require.NoError(t, os.WriteFile(path, []byte(original), 0o600))

	p := newTestProcessor(false)

	res, err := p.ProcessFile(path, false)
	require.NoError(t, err)
	require.True(t, res.Changed)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, original, string(data))

	_, err = p.ProcessFile(path, true)
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "# Changelog\n\n[0.2.0]: /b\n\n[0.1.0]: /a\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestProcessFile_MissingFile(t *testing.T) {
	_, err := newTestProcessor(false).ProcessFile(filepath.Join(t.TempDir(), "missing.md"), false)
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryFileSystem))
}

func TestProcess_BodyLineOffset(t *testing.T) {
	raw := []byte("---\ntitle: x\n---\nSee [a].\n[a]: /a\n")

	res, err := newTestProcessor(false).Process("doc.md", raw)
	require.NoError(t, err)
	require.Equal(t, 3, res.BodyLine)
	require.Len(t, res.Definitions, 1)
	require.Equal(t, 5, res.BodyLine+res.Definitions[0].Line)
}

func TestSplitBody(t *testing.T) {
	body, err := SplitBody([]byte("---\r\ntitle: x\r\n---\r\n# Changelog\r\n"))
	require.NoError(t, err)
	require.Equal(t, "# Changelog\n", body)

	body, err = SplitBody([]byte("---\nnot closed\n"))
	require.NoError(t, err)
	require.Equal(t, "---\nnot closed\n", body)
}

func TestProcess_LogsFailingTransform(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	p := NewProcessor(Options{References: refdefs.DefaultOptions(), Fingerprint: true}, logger)

	_, err := p.Process("bad.md", []byte("---\n: not yaml\n---\nBody\n"))
	require.Error(t, err)
	require.Contains(t, logs.String(), "transform=refresh_fingerprint")
}
