package sceneshift

import (
	"image/color"
	"io/fs"

	"github.com/tanema/gween/ease"
)

// Options configures a Director and its collaborators.
type Options struct {
	// BasePath and EntrySuffix define the path convention for symbolic scene identifiers:
	// an identifier "level1" expands to "<BasePath>/level1/level1<EntrySuffix>". Identifiers
	// that already name a path (containing a path separator or a file extension) are used
	// verbatim. Defaults are "scenes" and ".glb".
	BasePath    string
	EntrySuffix string

	// Aliases maps scene identifiers to replacement identifiers or paths, applied before
	// path expansion. Useful for pointing a stable name like "menu" at whatever file
	// currently backs it, or for loading aliases from a Manifest.
	Aliases map[string]string

	// FS is the filesystem scene resources are read from. Leaving it nil reads through the
	// OS filesystem (so absolute paths work); an embed.FS ships scenes inside the binary.
	FS fs.FS

	// FadeDuration is how long each half of the visual transition takes, in seconds. A
	// duration of zero or less makes the fades instantaneous. FadeColor is the overlay
	// color (default black), and Easing the tween's easing function (default ease.Linear).
	FadeDuration float32
	FadeColor    color.Color
	Easing       ease.TweenFunc

	// Logger receives the Director's and Loader's progress logs. Nil means no logging.
	Logger Logger

	// Callbacks are invoked as transitions begin and end.
	Callbacks DirectorCallbacks
}

// DefaultOptions creates an instance of Options with some sensible defaults: scenes load from
// "scenes/<id>/<id>.glb" relative to the working directory, with a half-second black fade.
func DefaultOptions() *Options {
	return &Options{
		BasePath:     "scenes",
		EntrySuffix:  ".glb",
		FadeDuration: 0.5,
		FadeColor:    color.Black,
	}
}
