package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// ErrUnsupportedFormat is returned when a source has no known encoding.
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// FileFormat represents the encodings a dataset can be stored in
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatJSON               // {"headers": [...], "rows": [[...]]}
	FormatMsgpack            // same shape, msgpack encoded
)

// FormatInfo contains metadata about a dataset encoding
type FormatInfo struct {
	Format       FileFormat
	Description  string
	Extensions   []string
	ContentTypes []string
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatJSON: {
		Format:       FormatJSON,
		Description:  "JSON Dataset",
		Extensions:   []string{".json"},
		ContentTypes: []string{"application/json", "text/json"},
	},
	FormatMsgpack: {
		Format:       FormatMsgpack,
		Description:  "MessagePack Dataset",
		Extensions:   []string{".msgpack", ".mpk"},
		ContentTypes: []string{"application/msgpack", "application/x-msgpack", "application/vnd.msgpack"},
	},
}

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "Unknown"
}

// DetectFormat picks an encoding from the extension of a file name or URL path.
func DetectFormat(name string) FileFormat {
	ext := strings.ToLower(filepath.Ext(name))
	for format, info := range supportedFormats {
		for _, e := range info.Extensions {
			if e == ext {
				return format
			}
		}
	}
	return FormatUnknown
}

// FormatFromContentType maps an HTTP Content-Type header to an encoding.
func FormatFromContentType(contentType string) FileFormat {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return FormatUnknown
	}
	for format, info := range supportedFormats {
		for _, ct := range info.ContentTypes {
			if ct == mediaType {
				return format
			}
		}
	}
	return FormatUnknown
}

// GetFormatInfo returns information about a specific format
func GetFormatInfo(format FileFormat) (FormatInfo, bool) {
	info, exists := supportedFormats[format]
	return info, exists
}

// Decode reads a whole dataset in the given encoding.
func Decode(r io.Reader, format FileFormat) (*Dataset, error) {
	ds := &Dataset{}
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(ds); err != nil {
			return nil, fmt.Errorf("failed to decode JSON dataset: %w", err)
		}
	case FormatMsgpack:
		if err := msgpack.NewDecoder(r).Decode(ds); err != nil {
			return nil, fmt.Errorf("failed to decode msgpack dataset: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	log.Debugf("Decoded %s: %d headers, %d rows", format, len(ds.Headers), len(ds.Rows))
	return ds, nil
}

// Encode writes a dataset in the given encoding.
func Encode(w io.Writer, ds *Dataset, format FileFormat) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		return enc.Encode(ds)
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(ds)
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
}
