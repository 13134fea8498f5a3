package tags

import (
	"errors"
	"fmt"
	"io/fs"

	id3 "github.com/bogem/id3v2/v2"
)

// Raw frame IDs for fields without a dedicated accessor on the id3v2 tag.
const (
	frameAlbumArtist = "TPE2"
	frameDate        = "TDRC"
	frameTrack       = "TRCK"
	frameComment     = "COMM"
)

// ID3Codec reads and writes ID3v2 tags using the bogem/id3v2 library.
// The zero value is ready to use.
type ID3Codec struct{}

var _ Codec = ID3Codec{}

// Read parses the tag of the file at path and returns all recognized fields.
// Missing frames read as empty strings.
func (ID3Codec) Read(path string) (Map, error) {
	tag, err := id3.Open(path, id3.Options{Parse: true})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %v: %w", path, err, ErrUnreadable)
	}
	defer tag.Close() //nolint:errcheck // read-only handle

	m := Map{
		FieldTitle:       tag.Title(),
		FieldAlbum:       tag.Album(),
		FieldArtist:      tag.Artist(),
		FieldAlbumArtist: tag.GetTextFrame(frameAlbumArtist).Text,
		FieldGenre:       ResolveGenre(tag.Genre()),
		FieldDate:        tag.GetTextFrame(frameDate).Text,
		FieldTrackNumber: tag.GetTextFrame(frameTrack).Text,
		FieldComment:     commentText(tag),
	}

	return m, nil
}

// Write persists the supplied fields to the file at path. An empty value
// removes the corresponding frame. The tag is rewritten in one Save call, so
// either all supplied fields land or none do.
func (ID3Codec) Write(path string, fields Map) error {
	tag, err := id3.Open(path, id3.Options{Parse: true})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &WriteError{Path: path, Err: ErrNotFound}
		}

		return &WriteError{Path: path, Err: err}
	}
	defer tag.Close() //nolint:errcheck // Save below is the write barrier

	for field, value := range fields {
		setField(tag, field, value)
	}

	if err := tag.Save(); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	return nil
}

func setField(tag *id3.Tag, field Field, value string) {
	switch field {
	case FieldTitle:
		tag.SetTitle(value)
	case FieldAlbum:
		tag.SetAlbum(value)
	case FieldArtist:
		tag.SetArtist(value)
	case FieldGenre:
		tag.SetGenre(value)
	case FieldAlbumArtist:
		setTextFrame(tag, frameAlbumArtist, value)
	case FieldDate:
		setTextFrame(tag, frameDate, value)
	case FieldTrackNumber:
		setTextFrame(tag, frameTrack, value)
	case FieldComment:
		tag.DeleteFrames(frameComment)
		if value != "" {
			tag.AddCommentFrame(id3.CommentFrame{
				Encoding: id3.EncodingUTF8,
				Language: "eng",
				Text:     value,
			})
		}
	}
}

func setTextFrame(tag *id3.Tag, id, value string) {
	if value == "" {
		tag.DeleteFrames(id)
		return
	}

	tag.AddTextFrame(id, id3.EncodingUTF8, value)
}

func commentText(tag *id3.Tag) string {
	for _, f := range tag.GetFrames(frameComment) {
		if cf, ok := f.(id3.CommentFrame); ok {
			return cf.Text
		}
	}

	return ""
}
