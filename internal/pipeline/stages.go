package pipeline

import (
	"context"
	"os"
	"path"
	"strings"
	"time"

	"aircast/internal/captions"
	"aircast/internal/links"
	"aircast/internal/logging"
	"aircast/internal/publish"
	"aircast/internal/roster"
	"aircast/internal/source"
)

// stageSpec declares one pipeline stage: its skip guard over the job state
// and its body. needsAudio stages are skipped after an acquisition hard
// failure instead of running against a missing file.
type stageSpec struct {
	name       string
	needsAudio bool
	skip       func(*State) (bool, string)
	run        func(context.Context, *Pipeline, *State) error
}

// stageTable is the full mode-by-stage matrix in dependency order.
func stageTable() []stageSpec {
	return []stageSpec{
		{
			name: "resolve",
			skip: func(*State) (bool, string) { return false, "" },
			run:  runResolve,
		},
		{
			name: "acquire",
			skip: func(s *State) (bool, string) {
				if !s.Job.Mode.RequiresAudio() {
					return true, "mode does not require audio"
				}
				return false, ""
			},
			run: runAcquire,
		},
		{
			name:       "transcode",
			needsAudio: true,
			skip: func(s *State) (bool, string) {
				if !s.Job.Mode.RequiresAudio() {
					return true, "mode does not require audio"
				}
				if !s.HasAudio() {
					return true, "no audio acquired"
				}
				return false, ""
			},
			run: runTranscode,
		},
		{
			name: "captions",
			skip: func(s *State) (bool, string) {
				if !s.Job.Mode.WantsTranscript() {
					return true, "mode does not build a transcript"
				}
				return false, ""
			},
			run: runCaptions,
		},
		{
			name:       "transcribe-fallback",
			needsAudio: true,
			skip: func(s *State) (bool, string) {
				if !s.Job.Mode.WantsTranscript() {
					return true, "mode does not build a transcript"
				}
				if s.HasTranscript() {
					return true, "captions already normalized"
				}
				if !s.HasAudio() {
					return true, "no audio to transcribe"
				}
				return false, ""
			},
			run: runTranscribeFallback,
		},
		{
			name: "attendees",
			skip: func(s *State) (bool, string) {
				if !s.Job.Mode.WantsAttendees() {
					return true, "mode does not build a roster"
				}
				return false, ""
			},
			run: runAttendees,
		},
		{
			name: "links",
			skip: func(s *State) (bool, string) {
				if !s.Job.Mode.WantsLinks() {
					return true, "mode does not build an engagement digest"
				}
				return false, ""
			},
			run: runLinks,
		},
		{
			name:       "upload",
			needsAudio: false,
			skip: func(s *State) (bool, string) {
				if s.EncodedAudioPath == "" && s.CaptionTrackPath == "" && s.VTTDoc == "" {
					return true, "no artifacts to upload"
				}
				return false, ""
			},
			run: runUpload,
		},
		{
			name: "publish",
			skip: func(*State) (bool, string) { return false, "" },
			run:  runPublish,
		},
	}
}

func runResolve(_ context.Context, p *Pipeline, s *State) error {
	res := source.Resolve(s.Job.Source, s.Job.KindHint)
	s.Job.Kind = res.Kind
	s.Job.SpaceID = res.SpaceID
	p.logger.Info("source resolved",
		logging.String("kind", string(res.Kind)),
		logging.String("space_id", res.SpaceID),
	)
	return nil
}

func runAcquire(ctx context.Context, p *Pipeline, s *State) error {
	result, err := p.chain.Acquire(ctx, s.Job)
	if err != nil {
		return err
	}
	s.Acquisition = result
	if result.MetadataPath != "" {
		if raw, readErr := os.ReadFile(result.MetadataPath); readErr == nil {
			s.Meta = publish.ParseSessionMeta(raw)
		}
	}
	p.logger.Info("audio acquired",
		logging.String("strategy", result.Strategy),
		logging.String("audio", result.AudioPath),
		logging.Bool("captions", result.CaptionsPath != ""),
		logging.Bool("metadata", result.MetadataPath != ""),
	)
	return nil
}

func runTranscode(ctx context.Context, p *Pipeline, s *State) error {
	profile := strings.TrimSpace(s.Job.AudioProfile)
	if profile == "" {
		profile = p.cfg.Transcode.DefaultProfile
	}
	output := s.Job.ArtifactPath(".m4a")

	encodeCtx, cancel := context.WithTimeout(ctx, time.Duration(p.cfg.Transcode.TimeoutSeconds)*time.Second)
	defer cancel()
	if err := p.encoder.Encode(encodeCtx, s.Acquisition.AudioPath, output, profile); err != nil {
		return err
	}
	s.EncodedAudioPath = output
	p.logger.Info("audio encoded", logging.String("profile", profile), logging.String("output", output))
	return nil
}

func runCaptions(_ context.Context, p *Pipeline, s *State) error {
	if s.Acquisition.CaptionsPath == "" {
		p.logger.Info("no caption records acquired")
		return nil
	}
	file, err := os.Open(s.Acquisition.CaptionsPath)
	if err != nil {
		p.logger.Warn("caption source unreadable", logging.Error(err))
		return nil
	}
	defer file.Close()

	s.Cues = captions.Normalize(file, s.Job.CaptionShift)
	if len(s.Cues) == 0 {
		p.logger.Info("caption normalization yielded no cues")
		return nil
	}
	s.VTTDoc = captions.RenderVTT(s.Cues)
	s.TranscriptHTML = captions.RenderMarkup(s.Cues)
	p.logger.Info("captions normalized", logging.Int("cues", len(s.Cues)))
	return nil
}

func runTranscribeFallback(ctx context.Context, p *Pipeline, s *State) error {
	if p.transcriber == nil || !p.transcriber.Enabled() {
		return nil
	}
	audio := s.EncodedAudioPath
	if audio == "" {
		audio = s.Acquisition.AudioPath
	}

	callCtx, cancel := context.WithTimeout(ctx, time.Duration(p.cfg.Transcribe.TimeoutSeconds)*time.Second)
	defer cancel()
	document, err := p.transcriber.Transcribe(callCtx, audio)
	if err != nil {
		return err
	}
	// The fallback emits the canonical subtitle format already; it replaces
	// the absent local document verbatim and bypasses normalization.
	s.VTTDoc = document
	p.logger.Info("fallback transcription produced subtitle document")
	return nil
}

func runAttendees(_ context.Context, p *Pipeline, s *State) error {
	metadataPath := s.Acquisition.MetadataPath
	if metadataPath == "" {
		metadataPath = s.Job.MetadataFile
	}
	if metadataPath == "" {
		p.logger.Info("no attendee metadata available")
		return nil
	}
	raw, err := os.ReadFile(metadataPath)
	if err != nil {
		p.logger.Warn("attendee metadata unreadable", logging.Error(err))
		return nil
	}
	if s.Meta.Title == "" && s.Meta.StartedAt.IsZero() {
		s.Meta = publish.ParseSessionMeta(raw)
	}
	extracted := roster.Parse(raw)
	s.AttendeesHTML = roster.RenderMarkup(extracted)
	p.logger.Info("attendees extracted",
		logging.Bool("host", extracted.Host != nil),
		logging.Int("co_hosts", len(extracted.CoHosts)),
		logging.Int("speakers", len(extracted.Speakers)),
	)
	return nil
}

func runLinks(ctx context.Context, p *Pipeline, s *State) error {
	markup := s.TranscriptMarkup()
	if markup == "" && s.Job.TranscriptFile != "" {
		if raw, err := os.ReadFile(s.Job.TranscriptFile); err == nil {
			markup = string(raw)
		}
	}

	if markup != "" {
		urls := links.Extract(markup, s.Job.Options.FetchLimit)
		s.LinkEntries = p.titles.Resolve(ctx, urls)
		s.LinksHTML = links.RenderList(s.LinkEntries)
	}
	s.RepliesHTML = links.RenderReference(s.Job.ReferenceLink)
	p.logger.Info("engagement digest collected",
		logging.Int("links", len(s.LinkEntries)),
		logging.Bool("reference", s.RepliesHTML != ""),
	)
	return nil
}

func runUpload(ctx context.Context, p *Pipeline, s *State) error {
	if p.store == nil || !p.store.Enabled() {
		p.logger.Info("object storage not configured, artifacts stay local")
		return nil
	}

	if s.VTTDoc != "" && s.CaptionTrackPath == "" {
		captionPath := s.Job.ArtifactPath(".vtt")
		if err := os.WriteFile(captionPath, []byte(s.VTTDoc), 0o644); err != nil {
			p.logger.Warn("write caption track", logging.Error(err))
		} else {
			s.CaptionTrackPath = captionPath
		}
	}

	if s.EncodedAudioPath != "" {
		dest := path.Join(s.Job.StoragePrefix, s.Job.BaseName()+".m4a")
		loc, err := p.store.Store(ctx, s.EncodedAudioPath, dest)
		if err != nil {
			return err
		}
		s.AudioLocation = loc
	}
	if s.CaptionTrackPath != "" {
		dest := path.Join(s.Job.StoragePrefix, s.Job.BaseName()+".vtt")
		loc, err := p.store.Store(ctx, s.CaptionTrackPath, dest)
		if err != nil {
			return err
		}
		s.CaptionLocation = loc
	}
	return nil
}

func runPublish(ctx context.Context, p *Pipeline, s *State) error {
	if p.publisher == nil || !p.publisher.Enabled() {
		p.logger.Info("publishing not configured, skipping registration")
		return nil
	}

	bundle := publish.AssetBundle{
		Title:           publish.ResolveTitle(s.Meta, s.Job),
		AudioURL:        preferPublic(s.AudioLocation.PublicURL, s.AudioLocation.URL),
		CaptionTrackURL: preferPublic(s.CaptionLocation.PublicURL, s.CaptionLocation.URL),
		TranscriptHTML:  s.TranscriptHTML,
		AttendeesHTML:   s.AttendeesHTML,
		RepliesHTML:     s.RepliesHTML,
		LinksHTML:       s.LinksHTML,
		RecordedAt:      publish.ResolveStartTime(s.Meta, s.Acquisition.AcquiredAt, s.Job.StartedAt),
	}

	publishCtx, cancel := context.WithTimeout(ctx, time.Duration(p.cfg.Publish.TimeoutSeconds)*time.Second)
	defer cancel()

	if s.Job.Mode.Scoped() {
		patch := publish.BuildPatch(s.Job.Mode, bundle)
		return p.publisher.PatchAssets(publishCtx, s.Job.PostID, patch)
	}
	return p.publisher.Register(publishCtx, publish.BuildRegister(s.Job, bundle))
}

func preferPublic(publicURL, url string) string {
	if publicURL != "" {
		return publicURL
	}
	return url
}
