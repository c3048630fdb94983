package service

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTrainingFile(t *testing.T, dir, name, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644)
	if err != nil {
		t.Fatal(err)
	}
}

func TestTrainingVideos(t *testing.T) {
	contentPath := t.TempDir()
	trainingDir := filepath.Join(contentPath, "training")
	err := os.MkdirAll(trainingDir, 0755)
	if err != nil {
		t.Fatal(err)
	}

	writeTrainingFile(t, trainingDir, "b-second.md", `---
title: "Course 2: Encounter"
step_label: "Step 2"
video_id: "abc123"
description: "Identify triggers."
step: 2
---
`)
	writeTrainingFile(t, trainingDir, "a-first.md", `---
title: "Course 1: Concession"
step_label: "Step 1"
video_id: "xyz789"
description: "Build your foundation."
step: 1
---
`)
	// Missing video_id: skipped, not fatal.
	writeTrainingFile(t, trainingDir, "broken.md", `---
title: "No video"
step: 3
---
`)

	s := NewTrainingService(contentPath)

	videos, err := s.Videos()
	if err != nil {
		t.Fatalf("Videos() error = %v", err)
	}

	if len(videos) != 2 {
		t.Fatalf("videos = %d; want 2", len(videos))
	}

	// Ordered by step, not filename.
	if videos[0].Title != "Course 1: Concession" || videos[1].Title != "Course 2: Encounter" {
		t.Fatalf("order = %q, %q", videos[0].Title, videos[1].Title)
	}

	first := videos[0]
	if first.StepLabel != "Step 1" || first.Description != "Build your foundation." {
		t.Fatalf("video = %+v", first)
	}
	if first.EmbedURL != "https://www.youtube.com/embed/xyz789" {
		t.Errorf("EmbedURL = %q", first.EmbedURL)
	}
	if first.WatchURL != "https://www.youtube.com/watch?v=xyz789" {
		t.Errorf("WatchURL = %q", first.WatchURL)
	}
	if first.ThumbnailURL != "https://img.youtube.com/vi/xyz789/hqdefault.jpg" {
		t.Errorf("ThumbnailURL = %q", first.ThumbnailURL)
	}
}

func TestTrainingVideos_EmptyCatalog(t *testing.T) {
	s := NewTrainingService(t.TempDir())

	videos, err := s.Videos()
	if err != nil {
		t.Fatalf("Videos() error = %v", err)
	}
	if len(videos) != 0 {
		t.Fatalf("videos = %d; want 0", len(videos))
	}
}
