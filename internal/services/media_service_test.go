package services

import "testing"

func TestClassifyMediaType(t *testing.T) {
	tests := []struct {
		contentType string
		want        string
		wantErr     bool
	}{
		{"image/jpeg", "image", false},
		{"image/png", "image", false},
		{"image/webp", "image", false},
		{"video/mp4", "video", false},
		{"video/quicktime", "video", false},
		{"application/pdf", "", true},
		{"image/svg+xml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ClassifyMediaType(tt.contentType)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ClassifyMediaType(%q): expected error", tt.contentType)
			}
			continue
		}
		if err != nil {
			t.Errorf("ClassifyMediaType(%q): unexpected error %v", tt.contentType, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ClassifyMediaType(%q) = %q, want %q", tt.contentType, got, tt.want)
		}
	}
}

func TestVideoThumbnailURL(t *testing.T) {
	tests := []struct {
		secureURL string
		want      string
	}{
		{
			"https://res.cloudinary.com/demo/video/upload/v1/zenith/media/clip.mp4",
			"https://res.cloudinary.com/demo/video/upload/v1/zenith/media/clip.jpg",
		},
		{
			"https://res.cloudinary.com/demo/video/upload/v1/zenith/media/final.cut.webm",
			"https://res.cloudinary.com/demo/video/upload/v1/zenith/media/final.cut.jpg",
		},
		// No extension to swap; returned as-is.
		{"no-extension", "no-extension"},
	}

	for _, tt := range tests {
		if got := VideoThumbnailURL(tt.secureURL); got != tt.want {
			t.Errorf("VideoThumbnailURL(%q) = %q, want %q", tt.secureURL, got, tt.want)
		}
	}
}
