package service

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/stridehq/stride/internal/markdown"
	"github.com/stridehq/stride/internal/model"
)

// TrainingService loads the read-only training video catalog from
// markdown frontmatter under content/training, ordered by step.
type TrainingService struct {
	parser      *markdown.Parser
	contentPath string
}

func NewTrainingService(contentPath string) *TrainingService {
	return &TrainingService{
		parser:      markdown.NewParser(),
		contentPath: contentPath,
	}
}

func (s *TrainingService) Videos() ([]*model.TrainingVideo, error) {
	pattern := filepath.Join(s.contentPath, "training", "*.md")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}

	var videos []*model.TrainingVideo
	for _, file := range files {
		video, err := s.video(file)
		if err != nil {
			continue
		}
		videos = append(videos, video)
	}

	sort.Slice(videos, func(i, j int) bool {
		return videos[i].Step < videos[j].Step
	})

	return videos, nil
}

func (s *TrainingService) video(path string) (*model.TrainingVideo, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	meta := s.parser.ExtractFrontmatter(content)

	video := &model.TrainingVideo{}

	title, ok := meta["title"].(string)
	if ok {
		video.Title = title
	}

	stepLabel, ok := meta["step_label"].(string)
	if ok {
		video.StepLabel = stepLabel
	}

	videoID, ok := meta["video_id"].(string)
	if ok {
		video.VideoID = videoID
	}

	description, ok := meta["description"].(string)
	if ok {
		video.Description = description
	}

	step, ok := meta["step"].(int)
	if ok {
		video.Step = step
	}

	if video.Title == "" || video.VideoID == "" {
		return nil, fmt.Errorf("training file missing title or video_id: %s", path)
	}

	video.EmbedURL = YouTubeEmbedURL(video.VideoID)
	video.WatchURL = YouTubeWatchURL(video.VideoID)
	video.ThumbnailURL = YouTubeThumbnailURL(video.VideoID)

	return video, nil
}

func YouTubeEmbedURL(videoID string) string {
	return "https://www.youtube.com/embed/" + videoID
}

func YouTubeWatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

func YouTubeThumbnailURL(videoID string) string {
	return "https://img.youtube.com/vi/" + videoID + "/hqdefault.jpg"
}
