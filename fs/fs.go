// Package fs provides file-based storage for snapshots, candidates,
// reports and the cached knowledge base.
package fs

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// maxSlugLen bounds the readable part of a slug; a hash suffix keeps
// truncated slugs unique.
const maxSlugLen = 80

// Slugify lowercases s and replaces every run of characters other than
// ASCII letters and digits with a single dash.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if len(slug) > maxSlugLen {
		slug = strings.TrimSuffix(slug[:maxSlugLen], "-")
	}
	return slug
}

// URLToFilename converts a linked page URL to a stable file name.
// Example: https://www.comsoc.org/cfp/6g?x=1 → www-comsoc-org-cfp-6g-x-1-<hash>.txt
func URLToFilename(rawURL string) string {
	readable := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		readable = u.Host + u.Path
		if u.RawQuery != "" {
			readable += "?" + u.RawQuery
		}
	}
	slug := Slugify(readable)
	sum := fmt.Sprintf("%08x", uint32(xxhash.Sum64String(rawURL)))
	if slug == "" {
		return sum + ".txt"
	}
	return slug + "-" + sum + ".txt"
}

// writeFileAtomic writes data to a temporary file in the target directory
// and renames it into place, so readers never see a partial file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
