package config

const (
	defaultCacheDir        = "~/.local/share/kithara"
	defaultLogDir          = "~/.local/share/kithara/logs"
	defaultVgmstreamBinary = "vgmstream-cli"
	defaultFFmpegBinary    = "ffmpeg"
	defaultFFprobeBinary   = "ffprobe"
	defaultVorbisQuality   = 4
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CacheDir: defaultCacheDir,
			LogDir:   defaultLogDir,
		},
		Tools: Tools{
			Vgmstream: defaultVgmstreamBinary,
			FFmpeg:    defaultFFmpegBinary,
			FFprobe:   defaultFFprobeBinary,
		},
		Conversion: Conversion{
			VorbisQuality: defaultVorbisQuality,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
