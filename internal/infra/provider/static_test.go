package provider

import (
	"context"
	"testing"
	"time"

	"news-portal/internal/domain/entity"
	"news-portal/internal/usecase/resolve"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatic_Dataset(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s := NewStatic(now)

	all := s.Prefix(100)
	require.Len(t, all, 6)
	for i, a := range all {
		assert.Equal(t, string(rune('1'+i)), a.ID)
		assert.True(t, a.Complete(), "article %s must be complete", a.ID)
		assert.Equal(t, now, a.PublishedAt)
		assert.Nil(t, a.ImageURL)
	}
	assert.Equal(t, "News Service Unavailable (Demo Mode)", all[0].Title)
	assert.Equal(t, "entertainment", all[5].Category)
}

func TestStatic_Prefix(t *testing.T) {
	s := NewStatic(time.Now())

	assert.Len(t, s.Prefix(0), 0)
	assert.Len(t, s.Prefix(-1), 0)
	assert.Len(t, s.Prefix(4), 4)
	assert.Len(t, s.Prefix(6), 6)
	assert.Len(t, s.Prefix(20), 6)
	assert.Equal(t, 6, s.Len())

	// 返却値の変更はデータセットに影響しない
	p := s.Prefix(1)
	p[0].Title = "changed"
	assert.Equal(t, "News Service Unavailable (Demo Mode)", s.Prefix(1)[0].Title)
}

func TestStatic_CallerMutationDoesNotLeak(t *testing.T) {
	s := NewStatic(time.Now())
	want := s.Prefix(6)
	wantSource := *want[0].Source

	p := s.Prefix(6)
	for i := range p {
		require.NotNil(t, p[i].Source)
		p[i].Source.Name = "mutated"
		p[i].Source.ID = "mutated"
		img := "https://example.com/x.png"
		p[i].ImageURL = &img
	}
	a, ok := s.Find("1")
	require.True(t, ok)
	a.Source.Name = "mutated via find"

	again := s.Prefix(6)
	assert.Equal(t, wantSource, *again[0].Source)
	for i := range again {
		assert.Equal(t, *want[i].Source, *again[i].Source)
		assert.Nil(t, again[i].ImageURL)
	}
	found, _ := s.Find("1")
	assert.Equal(t, wantSource.Name, found.Source.Name)
}

func TestCloneArticle_ImageURL(t *testing.T) {
	img := "https://example.com/a.png"
	orig := entity.Article{ID: "9", ImageURL: &img, Source: &entity.Source{Name: "Wire"}}

	c := cloneArticle(orig)
	*c.ImageURL = "changed"
	c.Source.Name = "changed"

	assert.Equal(t, "https://example.com/a.png", *orig.ImageURL)
	assert.Equal(t, "Wire", orig.Source.Name)
}

func TestStatic_Find(t *testing.T) {
	s := NewStatic(time.Now())

	a, ok := s.Find("4")
	assert.True(t, ok)
	assert.Equal(t, "Please Configure API Keys", a.Title)

	_, ok = s.Find("7")
	assert.False(t, ok)
}

func TestStatic_Attempt(t *testing.T) {
	s := NewStatic(time.Now())

	got, err := s.Attempt(context.Background(), resolve.Request{Mode: resolve.ModeHeadlines, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = s.Attempt(context.Background(), resolve.Request{Mode: resolve.ModeSearch, Query: "x"})
	assert.ErrorIs(t, err, resolve.ErrModeUnsupported)
	assert.True(t, s.Enabled())
}
