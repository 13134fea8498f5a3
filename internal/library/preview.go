package library

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/GokulSoumya/clid/internal/tags"
	"github.com/go-sprout/sprout/sprigin"
)

// previewData is the template context for one file's preview line.
type previewData struct {
	Title       string
	Album       string
	Artist      string
	AlbumArtist string
	Genre       string
	Date        string
	Track       string
	Comment     string
}

// Preview renders and caches the status line shown for the file under the
// cursor. The line format is a user-configurable template over the tag
// fields, with the sprout function set available.
type Preview struct {
	codec tags.Codec
	tmpl  *template.Template
	cache map[string]string
}

// NewPreview compiles the preview format and returns a ready cache.
func NewPreview(codec tags.Codec, format string) (*Preview, error) {
	tmpl, err := template.New("preview").Funcs(sprigin.FuncMap()).Parse(format)
	if err != nil {
		return nil, fmt.Errorf("parsing preview format: %w", err)
	}

	return &Preview{
		codec: codec,
		tmpl:  tmpl,
		cache: map[string]string{},
	}, nil
}

// Line returns the preview line for the file at path, reading tags on a
// cache miss. force bypasses the cache, for use after a tag write.
func (p *Preview) Line(path string, force bool) (string, error) {
	if !force {
		if line, ok := p.cache[path]; ok {
			return line, nil
		}
	}

	fields, err := p.codec.Read(path)
	if err != nil {
		return "", err
	}

	data := previewData{
		Title:       fields[tags.FieldTitle],
		Album:       fields[tags.FieldAlbum],
		Artist:      fields[tags.FieldArtist],
		AlbumArtist: fields[tags.FieldAlbumArtist],
		Genre:       tags.ResolveGenre(fields[tags.FieldGenre]),
		Date:        fields[tags.FieldDate],
		Track:       fields[tags.FieldTrackNumber],
		Comment:     fields[tags.FieldComment],
	}

	var b strings.Builder
	if err := p.tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("rendering preview for %s: %w", path, err)
	}

	line := b.String()
	p.cache[path] = line

	return line, nil
}

// Invalidate drops the cached line for path.
func (p *Preview) Invalidate(path string) {
	delete(p.cache, path)
}
