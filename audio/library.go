package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"
	"github.com/gruntwork-io/go-commons/files"
)

// ErrClipNotFound is returned when a sound file does not exist.
var ErrClipNotFound = errors.New("sound file not found")

// Clip is a decoded sound. Clips are shared by every show that references the same file.
type Clip struct {
	// Canonical (absolute, cleaned) path of the sound file.
	Path string

	buffer *beep.Buffer
}

// Name is the base name of the clip's file.
func (c *Clip) Name() string {
	return filepath.Base(c.Path)
}

// Decoder turns a sound file into an in-memory buffer.
type Decoder func(path string) (*beep.Buffer, error)

// DecodeFile decodes an mp3 or wav file fully into memory.
func DecodeFile(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	default:
		f.Close()
		return nil, fmt.Errorf("unsupported audio format %q", ext)
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	return buffer, nil
}

// SkipDecode is a Decoder that does not read the file. It is used when no sound will actually be played.
func SkipDecode(string) (*beep.Buffer, error) {
	return nil, nil
}

// Library loads each sound file once and hands out the same Clip for every later request.
type Library struct {
	decode Decoder
	clips  map[string]*Clip
	lock   sync.Mutex
}

// NewLibrary creates an empty clip library.
func NewLibrary(decode Decoder) *Library {
	return &Library{
		decode: decode,
		clips:  make(map[string]*Clip),
	}
}

// Load returns the clip for path, decoding it on first use.
func (l *Library) Load(path string) (*Clip, error) {
	canonical, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	l.lock.Lock()
	defer l.lock.Unlock()

	if clip, ok := l.clips[canonical]; ok {
		return clip, nil
	}
	if !files.FileExists(canonical) {
		return nil, fmt.Errorf("%w: %s", ErrClipNotFound, path)
	}

	buffer, err := l.decode(canonical)
	if err != nil {
		return nil, err
	}

	clip := &Clip{Path: canonical, buffer: buffer}
	l.clips[canonical] = clip
	return clip, nil
}

// Len returns the number of cached clips.
func (l *Library) Len() int {
	l.lock.Lock()
	defer l.lock.Unlock()
	return len(l.clips)
}
