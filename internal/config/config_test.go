package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "_config.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeConfig(t, `
title: Test Blog
url: https://example.com/
author: Jane
timezone: Asia/Tokyo
source_dir: src
public_dir: /tmp/out

post_calendar:
  excerpt_character_limit: 80
  contents_character_limit: 200

feed:
  rss: true
  atom: false
  post_limit: 5
`)
	t.Setenv("NODE_ENV", "production")

	conf, err := Load(path, quietLogger())
	if err != nil {
		t.Fatal(err)
	}

	if conf.Title != "Test Blog" || conf.Author != "Jane" {
		t.Errorf("unexpected site info %q / %q", conf.Title, conf.Author)
	}
	if conf.PostCalendar.ExcerptCharacterLimit != 80 || conf.PostCalendar.ContentsCharacterLimit != 200 {
		t.Errorf("unexpected calendar settings %+v", conf.PostCalendar)
	}
	if !conf.Feed.RSS || conf.Feed.Atom || conf.Feed.PostLimit != 5 {
		t.Errorf("unexpected feed settings %+v", conf.Feed)
	}
	if conf.SourceDir != filepath.Join(filepath.Dir(path), "src") {
		t.Errorf("expected source dir relative to the config file, got %q", conf.SourceDir)
	}
	if conf.PublicDir != "/tmp/out" {
		t.Errorf("absolute paths should be kept, got %q", conf.PublicDir)
	}
	if conf.Env != "production" || conf.IsDevelopment() {
		t.Errorf("expected production env, got %q", conf.Env)
	}

	opts := conf.CalendarOptions()
	if opts.Timezone != "Asia/Tokyo" || opts.ExcerptCharacterLimit != 80 {
		t.Errorf("unexpected calendar options %+v", opts)
	}
}

func TestLoadConfigWithDefaults(t *testing.T) {
	path := writeConfig(t, "title: Minimal\n")
	t.Setenv("NODE_ENV", "")

	conf, err := Load(path, quietLogger())
	if err != nil {
		t.Fatal(err)
	}

	if conf.PostCalendar.ExcerptCharacterLimit != 0 {
		t.Errorf("expected excerpt limit 0, got %d", conf.PostCalendar.ExcerptCharacterLimit)
	}
	if conf.PostCalendar.ContentsCharacterLimit != 140 {
		t.Errorf("expected contents limit 140, got %d", conf.PostCalendar.ContentsCharacterLimit)
	}
	if conf.Timezone != "UTC" {
		t.Errorf("expected UTC, got %q", conf.Timezone)
	}
	if conf.Permalink != ":year/:month/:day/:title/" {
		t.Errorf("unexpected permalink %q", conf.Permalink)
	}
	if !conf.IsDevelopment() {
		t.Errorf("expected development env by default, got %q", conf.Env)
	}
	if conf.BaseDir != filepath.Dir(path) {
		t.Errorf("unexpected base dir %q", conf.BaseDir)
	}
	if conf.PublicDir != filepath.Join(filepath.Dir(path), "public") {
		t.Errorf("unexpected public dir %q", conf.PublicDir)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, "title: From File\npost_calendar:\n  excerpt_character_limit: 10\n")
	t.Setenv("BLOGCAL_TITLE", "From Env")
	t.Setenv("BLOGCAL_POST_CALENDAR_EXCERPT_CHARACTER_LIMIT", "25")

	conf, err := Load(path, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	if conf.Title != "From Env" {
		t.Errorf("expected env to override title, got %q", conf.Title)
	}
	if conf.PostCalendar.ExcerptCharacterLimit != 25 {
		t.Errorf("expected env to override limit, got %d", conf.PostCalendar.ExcerptCharacterLimit)
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"negative excerpt limit", "post_calendar:\n  excerpt_character_limit: -1\n"},
		{"negative contents limit", "post_calendar:\n  contents_character_limit: -5\n"},
		{"negative post limit", "feed:\n  post_limit: -2\n"},
		{"malformed yaml", "title: [unterminated\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content), quietLogger()); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yml"), quietLogger()); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestLoadWithoutConfigFile(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	conf, err := Load("", quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	if conf.Title != "My Blog" || conf.PublicDir != "public" {
		t.Errorf("expected defaults, got %q / %q", conf.Title, conf.PublicDir)
	}
}
