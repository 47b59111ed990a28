package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/yigit/docsystem/internal/app/models"
)

type fakeTags struct {
	byName map[string]*models.Tag
	fail   string
}

func (f *fakeTags) Ensure(_ context.Context, name string) (*models.Tag, error) {
	if name == f.fail {
		return nil, errors.New("boom")
	}
	if t, ok := f.byName[name]; ok {
		return t, nil
	}
	t := &models.Tag{ID: int64(len(f.byName) + 1), Name: name}
	f.byName[name] = t
	return t, nil
}

func TestCreateDefaultDataIsIdempotent(t *testing.T) {
	tags := &fakeTags{byName: map[string]*models.Tag{}}

	for i := 0; i < 2; i++ {
		if err := CreateDefaultData(context.Background(), tags, zerolog.Nop()); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
	if len(tags.byName) != len(DefaultTags) {
		t.Errorf("tags = %d, want %d", len(tags.byName), len(DefaultTags))
	}
}

func TestCreateDefaultDataContinuesPastFailure(t *testing.T) {
	tags := &fakeTags{byName: map[string]*models.Tag{}, fail: DefaultTags[0]}

	err := CreateDefaultData(context.Background(), tags, zerolog.Nop())
	if err == nil {
		t.Fatal("expected error")
	}
	if len(tags.byName) != len(DefaultTags)-1 {
		t.Errorf("tags = %d, want %d", len(tags.byName), len(DefaultTags)-1)
	}
}
