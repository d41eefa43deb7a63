package config

const (
	defaultWorkDir            = "~/.local/share/aircast/work"
	defaultLogDir             = "~/.local/share/aircast/logs"
	defaultCaptureBinary      = "spacescrape"
	defaultCaptureTimeout     = 1800
	defaultDownloadBinary     = "yt-dlp"
	defaultDownloadTimeout    = 900
	defaultTranscodeBinary    = "ffmpeg"
	defaultTranscodeProfile   = "transparent"
	defaultTranscodeTimeout   = 1800
	defaultTranscribeTimeout  = 600
	defaultTranscribeLanguage = "en"
	defaultPublishTimeout     = 30
	defaultLinkFetchLimit     = 18
	defaultLinkFetchTimeout   = 4
	defaultLinkFetchWorkers   = 4
	defaultLogFormat          = ""
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir: defaultWorkDir,
			LogDir:  defaultLogDir,
		},
		Capture: Capture{
			Binary:         defaultCaptureBinary,
			TimeoutSeconds: defaultCaptureTimeout,
		},
		Download: Download{
			Binary:         defaultDownloadBinary,
			TimeoutSeconds: defaultDownloadTimeout,
		},
		Transcode: Transcode{
			Binary:         defaultTranscodeBinary,
			DefaultProfile: defaultTranscodeProfile,
			TimeoutSeconds: defaultTranscodeTimeout,
		},
		Transcribe: Transcribe{
			Language:       defaultTranscribeLanguage,
			TimeoutSeconds: defaultTranscribeTimeout,
		},
		Publish: Publish{
			TimeoutSeconds: defaultPublishTimeout,
		},
		Links: Links{
			FetchTitles:         true,
			FetchLimit:          defaultLinkFetchLimit,
			FetchTimeoutSeconds: defaultLinkFetchTimeout,
			FetchWorkers:        defaultLinkFetchWorkers,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
