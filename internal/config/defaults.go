package config

const (
	defaultConfigPath   = "~/.config/filerename/config.toml"
	projectConfigName   = "filerename.toml"
	defaultStateDir     = "~/.local/share/filerename"
	defaultPlaylistExt  = ".m3u"
	defaultTagWriter    = TagWriterFFmpeg
	defaultFFmpegBinary = "ffmpeg"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
	defaultLogMaxSizeMB = 10
	defaultLogBackups   = 3
	defaultLogMaxAge    = 30
)

// Supported tag writers.
const (
	TagWriterFFmpeg = "ffmpeg"
	TagWriterID3v2  = "id3v2"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Rules: Rules{
			Remove:  []string{":"},
			Replace: []Replacement{{From: "(", To: "- "}},
		},
		Extensions: Extensions{
			Audio:    []string{".mp3"},
			Video:    []string{".mp4", ".m4v"},
			Playlist: defaultPlaylistExt,
			Ignore:   []string{".iso"},
		},
		Tagging: Tagging{
			Writer:       defaultTagWriter,
			FFmpegBinary: defaultFFmpegBinary,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		Logging: Logging{
			Format:     defaultLogFormat,
			Level:      defaultLogLevel,
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogBackups,
			MaxAgeDays: defaultLogMaxAge,
		},
	}
}
