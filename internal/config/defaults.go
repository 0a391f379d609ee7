package config

const (
	defaultConfigPath          = "~/.config/glottisdale/config.toml"
	defaultOutputDir           = "./glottisdale-output"
	defaultStateDir            = "~/.local/state/glottisdale"
	defaultTargetDuration      = 10.0
	defaultPaddingMS           = 25
	defaultFadeMS              = 10
	defaultSyllableCrossfadeMS = 30
	defaultWordCrossfadeMS     = 50
	defaultOrderingAttempts    = 5
	defaultStretchFactor       = 2.0
	defaultNoiseLevelDB        = -40
	defaultPitchRange          = 5
	defaultBreathProbability   = 0.6
	defaultSampleRate          = 16000
	defaultStretcher           = StretcherNative
	defaultFFmpegBinary        = "ffmpeg"
	defaultToolTimeoutSeconds  = 120
	defaultAnalysisWorkers     = 4
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Stretch primitive names accepted by processing.stretcher.
const (
	StretcherNative = "native"
	StretcherFFmpeg = "ffmpeg"
)

// Word repeat styles accepted by repeat.style.
const (
	RepeatExact    = "exact"
	RepeatResample = "resample"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			StateDir:  defaultStateDir,
		},
		Collage: Collage{
			TargetDuration:      defaultTargetDuration,
			SyllablesPerWord:    IntRange{Min: 1, Max: 4},
			WordsPerPhrase:      IntRange{Min: 3, Max: 5},
			PhrasesPerSentence:  IntRange{Min: 2, Max: 3},
			PaddingMS:           defaultPaddingMS,
			FadeMS:              defaultFadeMS,
			SyllableCrossfadeMS: defaultSyllableCrossfadeMS,
			WordCrossfadeMS:     defaultWordCrossfadeMS,
			PhrasePauseMS:       FloatRange{Min: 400, Max: 700},
			SentencePauseMS:     FloatRange{Min: 800, Max: 1200},
			OrderingAttempts:    defaultOrderingAttempts,
			WriteClips:          true,
		},
		Stretch: Stretch{
			Factor: FloatRange{Min: defaultStretchFactor, Max: defaultStretchFactor},
		},
		Stutter: Stutter{
			Count: IntRange{Min: 1, Max: 2},
		},
		Repeat: Repeat{
			Count: IntRange{Min: 1, Max: 2},
			Style: RepeatExact,
		},
		Polish: Polish{
			NoiseLevelDB:      defaultNoiseLevelDB,
			RoomTone:          true,
			PitchNormalize:    true,
			PitchRange:        defaultPitchRange,
			Breaths:           true,
			BreathProbability: defaultBreathProbability,
			VolumeNormalize:   true,
			ProsodicDynamics:  true,
		},
		Processing: Processing{
			SampleRate:         defaultSampleRate,
			Stretcher:          defaultStretcher,
			FFmpegBinary:       defaultFFmpegBinary,
			ToolTimeoutSeconds: defaultToolTimeoutSeconds,
			AnalysisWorkers:    defaultAnalysisWorkers,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
