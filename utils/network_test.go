package utils

import "testing"

func TestIsNetworkDrive(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{"UNC path", "//server/share/video.mp4", true},
		{"Windows UNC", "\\\\server\\share\\video.mp4", true},
		{"Linux mnt", "/mnt/nas/video.mp4", true},
		{"Linux media", "/media/usb/video.mp4", true},
		{"macOS volume", "/Volumes/share/video.mp4", true},
		{"NFS in path", "/data/nfs-share/video.mp4", true},
		{"Local home", "/home/user/video.mp4", false},
		{"Local tmp", "/tmp/video.mp4", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNetworkDrive(tt.path); got != tt.expected {
				t.Errorf("IsNetworkDrive(%q) = %v, expected %v", tt.path, got, tt.expected)
			}
		})
	}
}
