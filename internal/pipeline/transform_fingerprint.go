package pipeline

import (
	"strings"

	"git.home.luguber.info/inful/refsort/internal/frontmatter"
	"github.com/inful/mdfp"
)

// Front matter keys excluded from the content fingerprint.
var fingerprintExcludedKeys = []string{mdfp.FingerprintField, "lastmod", "uid", "aliases"}

// refreshFingerprint recomputes an existing `fingerprint` front matter field
// after the body was rewritten. Documents without the field are left alone.
//
// The hash covers the front matter without fingerprint, lastmod, uid and
// aliases (serialised with sorted keys and LF newlines, one trailing newline
// trimmed) plus the body as written.
func refreshFingerprint(doc *Document) error {
	if !doc.Parts.Had {
		return nil
	}

	fields, err := frontmatter.ParseYAML(doc.Parts.FrontMatter)
	if err != nil {
		return err
	}
	current, ok := fields[mdfp.FingerprintField].(string)
	if !ok {
		return nil
	}

	fingerprint, err := ComputeFingerprint(fields, doc.Parts.Body)
	if err != nil {
		return err
	}
	if fingerprint == current {
		return nil
	}

	updated, err := frontmatter.SetString(doc.Parts.FrontMatter, mdfp.FingerprintField, fingerprint, doc.Parts.Style.Newline)
	if err != nil {
		return err
	}
	doc.Parts.FrontMatter = updated
	return nil
}

// ComputeFingerprint returns the canonical content fingerprint for a
// document with the given front matter fields and body.
func ComputeFingerprint(fields map[string]any, body []byte) (string, error) {
	hashed := make(map[string]any, len(fields))
	for k, v := range fields {
		hashed[k] = v
	}
	for _, k := range fingerprintExcludedKeys {
		delete(hashed, k)
	}

	serialized, err := frontmatter.SerializeYAML(hashed)
	if err != nil {
		return "", err
	}
	fm := strings.TrimSuffix(string(serialized), "\n")

	return mdfp.CalculateFingerprintFromParts(fm, string(body)), nil
}
