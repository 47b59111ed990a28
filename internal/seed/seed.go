package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/yigit/docsystem/internal/app/models"
)

// DefaultTags are created on startup when absent
var DefaultTags = []string{
	"Textbook",
	"Lecture Notes",
	"Reference",
	"Research Paper",
	"Exercises",
}

// TagEnsurer creates a tag by name or returns the existing one
type TagEnsurer interface {
	Ensure(ctx context.Context, name string) (*models.Tag, error)
}

// CreateDefaultData ensures the default tags exist. Failures are collected so
// one bad tag does not stop the rest.
func CreateDefaultData(ctx context.Context, tags TagEnsurer, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default tags...")
	var finalErr error

	for _, name := range DefaultTags {
		tag, err := tags.Ensure(ctx, name)
		if err != nil {
			lgr.Error().Err(err).Str("tag", name).Msg("Error creating default tag")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		lgr.Debug().Int64("tagID", tag.ID).Str("tag", tag.Name).Msg("Default tag present")
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}
