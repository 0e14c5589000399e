package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/campusboard/pkg/store"
	"tableflip.dev/campusboard/pkg/timeutil"
)

// SlideshowOptions overrides the configured slideshow timings.
type SlideshowOptions struct {
	Rotate string
	Idle   string
}

func AddSlideshowArgs(cmd *cobra.Command, o *SlideshowOptions) {
	cmd.Flags().StringVar(&o.Rotate, "rotate", "",
		`How long each slide is shown, example: --rotate=15s. Defaults to the config value.`)
	cmd.Flags().StringVar(&o.Idle, "idle", "",
		`Idle time before the slideshow starts on its own, example: --idle=1m.`)
}

// Durations resolves flags over config over defaults.
func (o *SlideshowOptions) Durations(s *store.Settings) (rotate, idle time.Duration, err error) {
	rotateRaw, idleRaw := o.Rotate, o.Idle
	if s != nil {
		if rotateRaw == "" {
			rotateRaw = s.Slideshow.Rotate
		}
		if idleRaw == "" {
			idleRaw = s.Slideshow.Idle
		}
	}
	if rotate, err = timeutil.ParseInterval(rotateRaw, timeutil.DefaultRotate); err != nil {
		return 0, 0, err
	}
	if idle, err = timeutil.ParseInterval(idleRaw, timeutil.DefaultIdle); err != nil {
		return 0, 0, err
	}
	return rotate, idle, nil
}
