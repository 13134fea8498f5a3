// Package tags defines the tag field vocabulary and the codec boundary
// used to read and write audio metadata.
package tags

import (
	"regexp"
	"strconv"
)

// Field identifies one recognized tag field.
type Field string

// Recognized tag fields.
const (
	FieldTitle       Field = "title"
	FieldAlbum       Field = "album"
	FieldArtist      Field = "artist"
	FieldAlbumArtist Field = "album_artist"
	FieldGenre       Field = "genre"
	FieldDate        Field = "date"
	FieldTrackNumber Field = "track_number"
	FieldComment     Field = "comment"
)

// FieldOrder is the display order of tag fields in the edit form.
var FieldOrder = []Field{
	FieldTitle,
	FieldAlbum,
	FieldArtist,
	FieldAlbumArtist,
	FieldGenre,
	FieldDate,
	FieldTrackNumber,
	FieldComment,
}

// Label returns the human-readable form label for a field.
func (f Field) Label() string {
	switch f {
	case FieldTitle:
		return "Title"
	case FieldAlbum:
		return "Album"
	case FieldArtist:
		return "Artist"
	case FieldAlbumArtist:
		return "Album Artist"
	case FieldGenre:
		return "Genre"
	case FieldDate:
		return "Date/Year"
	case FieldTrackNumber:
		return "Track Number"
	case FieldComment:
		return "Comment"
	}

	return string(f)
}

// Map holds field values keyed by field name. Iteration order is not
// meaningful; use FieldOrder for display.
type Map map[Field]string

// Codec reads and writes tag fields for a single audio file. Write must be
// all-or-nothing per file: either every supplied field is persisted or none.
type Codec interface {
	Read(path string) (Map, error)
	Write(path string, fields Map) error
}

var numericGenrePattern = regexp.MustCompile(`\((\d+)\)`)

// ResolveGenre converts numeric genre values of the form "(17)" (written by
// some taggers) to their readable name. Values that do not match the numeric
// form are returned unchanged; an out-of-range number resolves to "".
func ResolveGenre(genre string) string {
	match := numericGenrePattern.FindStringSubmatch(genre)
	if match == nil {
		return genre
	}

	idx, err := strconv.Atoi(match[1])
	if err != nil || idx >= len(Genres) {
		// Unparseable or unknown numbers resolve to an empty genre.
		return ""
	}

	return Genres[idx]
}
