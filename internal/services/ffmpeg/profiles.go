package ffmpeg

import "fmt"

// Profile names accepted by the transcoder.
const (
	ProfileTransparent = "transparent"
	ProfileRadio       = "radio"
	ProfileAggressive  = "aggressive"
)

// profileArgs maps a profile to the encoder/filter arguments placed between
// the input and output paths.
var profileArgs = map[string][]string{
	ProfileTransparent: {
		"-c:a", "aac",
		"-b:a", "128k",
	},
	ProfileRadio: {
		"-af", "highpass=f=80,lowpass=f=10000",
		"-c:a", "aac",
		"-b:a", "64k",
		"-ac", "1",
	},
	ProfileAggressive: {
		"-af", "highpass=f=120,lowpass=f=8000,loudnorm=I=-18:TP=-2:LRA=11",
		"-c:a", "aac",
		"-b:a", "32k",
		"-ac", "1",
	},
}

// ArgsForProfile resolves a profile name to encoder arguments.
func ArgsForProfile(profile string) ([]string, error) {
	args, ok := profileArgs[profile]
	if !ok {
		return nil, fmt.Errorf("unknown audio profile %q", profile)
	}
	return args, nil
}
