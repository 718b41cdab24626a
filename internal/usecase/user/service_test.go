package user

import (
	"errors"
	"reflect"
	"testing"
)

func TestNormalizeTags(t *testing.T) {
	got, err := NormalizeTags([]string{" Sleep ", "sleep", "", "ANXIETY", "journaling"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := []string{"sleep", "anxiety", "journaling"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNormalizeTags_TooMany(t *testing.T) {
	tags := make([]string, MaxTags+1)
	for i := range tags {
		tags[i] = string(rune('a' + i))
	}
	if _, err := NormalizeTags(tags); !errors.Is(err, ErrInvalidTags) {
		t.Fatalf("expected ErrInvalidTags, got %v", err)
	}
}

func TestNormalizeTags_DuplicatesDoNotCountTowardCap(t *testing.T) {
	tags := make([]string, 0, MaxTags*2)
	for i := 0; i < MaxTags; i++ {
		tag := string(rune('a' + i))
		tags = append(tags, tag, tag)
	}
	got, err := NormalizeTags(tags)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != MaxTags {
		t.Fatalf("expected %d tags, got %d", MaxTags, len(got))
	}
}
